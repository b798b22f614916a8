package testutil

import (
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"gorm.io/gorm"
)

// TestUser creates a test user with realistic fields.
func TestUser() *models.User {
	return &models.User{
		Model:          gorm.Model{ID: 1},
		Email:          "farmer@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ012",
		Language:       "hi",
		Location:       "Nashik, Maharashtra",
	}
}

// TestPrompts returns a prompt set equivalent to configs/prompts.yaml,
// without touching the filesystem.
func TestPrompts() *config.Prompts {
	return &config.Prompts{
		Assistant: config.SinglePrompt{
			System: "You are Gram Vaani, AI Voice Assistant for Rural India. Help with farming, weather, crops, and government schemes. User is in {{.Location}}.",
		},
		Schemes: config.SinglePrompt{
			System: "You are Gram Vaani, AI assistant for rural India. Provide information about government schemes for farmers in simple terms.",
		},
		Translate: config.TranslatePrompts{
			ToEnglish:   "Translate the following text to English. Respond with only the translation.\n\n{{.Text}}",
			FromEnglish: "Translate the following text into {{.Language}}. {{.ScriptInstruction}} Respond with only the translation.\n\n{{.Text}}",
		},
	}
}
