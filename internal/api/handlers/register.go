package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roksva123/go-clickup-bridge/internal/service"
)

// RegisterHandler pushes the slash-command schema to Discord.
type RegisterHandler struct {
	ApplicationID string
	BotToken      string
	Commands      []service.CommandDefinition
}

func NewRegisterHandler(applicationID, botToken string, commands []service.CommandDefinition) *RegisterHandler {
	return &RegisterHandler{
		ApplicationID: applicationID,
		BotToken:      botToken,
		Commands:      commands,
	}
}

// Handle processes POST /register: a bulk overwrite of the application's
// commands, returning Discord's response verbatim.
func (h *RegisterHandler) Handle(c *gin.Context) {
	out, err := service.RegisterCommands(c.Request.Context(), h.ApplicationID, h.BotToken, h.Commands)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}
