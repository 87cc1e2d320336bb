package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// Discord
	DiscordPublicKey     string
	DiscordToken         string
	DiscordApplicationID string

	// ClickUp
	ClickUpToken       string
	ClickUpWorkspaceID string
}

// requiredVars must all be set; there are no safe defaults for credentials.
var requiredVars = []string{
	"DISCORD_PUBLIC_KEY",
	"DISCORD_TOKEN",
	"DISCORD_APPLICATION_ID",
	"CLICKUP_API_TOKEN",
	"CLICKUP_WORKSPACE_ID",
}

func Load() (*Config, error) {
	var missing []string
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8001"),

		// Discord
		DiscordPublicKey:     os.Getenv("DISCORD_PUBLIC_KEY"),
		DiscordToken:         os.Getenv("DISCORD_TOKEN"),
		DiscordApplicationID: os.Getenv("DISCORD_APPLICATION_ID"),

		// ClickUp
		ClickUpToken:       os.Getenv("CLICKUP_API_TOKEN"),
		ClickUpWorkspaceID: os.Getenv("CLICKUP_WORKSPACE_ID"),
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
