package model

// Discord interaction types.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Discord application command option types.
const (
	OptionSubCommand = 1
	OptionString     = 3
	OptionInteger    = 4
	OptionBoolean    = 5
)

// Interaction is one inbound webhook event from Discord.
type Interaction struct {
	Type int             `json:"type"`
	Data InteractionData `json:"data"`
}

// InteractionData carries the invoked command name and its option tree.
type InteractionData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options"`
}

// CommandOption is a node in the nested option tree: a leaf carrying a value,
// or a sub-command carrying children.
type CommandOption struct {
	Name    string          `json:"name"`
	Type    int             `json:"type"`
	Value   any             `json:"value,omitempty"`
	Options []CommandOption `json:"options,omitempty"`
}

// SubcommandKey is the reserved key the sub-command name is stored under when
// flattening an option tree.
const SubcommandKey = "subcommand"

// FlattenOptions collapses the nested option tree into a flat name → value
// map. A sub-command node records its name under SubcommandKey and its
// children are merged into the same map; the decoder assumes option names do
// not collide across levels.
func FlattenOptions(options []CommandOption) map[string]any {
	out := make(map[string]any, len(options))
	flattenInto(out, options)
	return out
}

func flattenInto(dst map[string]any, options []CommandOption) {
	for _, opt := range options {
		if opt.Type == OptionSubCommand {
			dst[SubcommandKey] = opt.Name
			flattenInto(dst, opt.Options)
			continue
		}
		dst[opt.Name] = opt.Value
	}
}
