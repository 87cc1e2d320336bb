package model

// Discord interaction response types.
const (
	ResponsePong                   = 1
	ResponseChannelMessage         = 4
	ResponseDeferredChannelMessage = 5
	ResponseDeferredUpdateMessage  = 6
	ResponseUpdateMessage          = 7
	ResponseAutocompleteResult     = 8
	ResponseModal                  = 9
)

// InteractionResponse is the `{type, data}` object returned verbatim to
// Discord by the routing layer.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData holds the visible reply: plain content, embeds, or both.
type ResponseData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord rich embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField is one name/value row inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// PongResponse acknowledges a Discord ping.
func PongResponse() *InteractionResponse {
	return &InteractionResponse{Type: ResponsePong}
}

// MessageResponse builds a plain-text channel message reply.
func MessageResponse(content string) *InteractionResponse {
	return &InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &ResponseData{Content: content},
	}
}

// EmbedsResponse builds a channel message reply carrying only embeds.
func EmbedsResponse(embeds ...Embed) *InteractionResponse {
	return &InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &ResponseData{Embeds: embeds},
	}
}
