package service

import (
	"time"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

// embedColor is the accent used on every ClickUp embed.
const embedColor = 0x00AAFF

// FormatEmbed builds a Discord embed with the bridge's standard color and a
// current timestamp.
func FormatEmbed(title, description string, fields ...model.EmbedField) model.Embed {
	return model.Embed{
		Title:       title,
		Description: description,
		Color:       embedColor,
		Fields:      fields,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func field(name, value string) model.EmbedField {
	return model.EmbedField{Name: name, Value: value}
}
