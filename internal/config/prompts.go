package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// SinglePrompt holds a single system prompt (no user template).
type SinglePrompt struct {
	System string `yaml:"system"`
}

// TranslatePrompts holds the translation prompt templates used by the
// multilingual answer pipeline.
type TranslatePrompts struct {
	// ToEnglish instructs the model to emit only the English translation
	// of {{.Text}}, with no commentary.
	ToEnglish string `yaml:"to_english"`
	// FromEnglish instructs the model to translate {{.Text}} into
	// {{.Language}}, honouring {{.ScriptInstruction}}.
	FromEnglish string `yaml:"from_english"`
}

// Prompts is the top-level prompt configuration loaded from YAML.
type Prompts struct {
	// Assistant is the rural-advisory persona applied to every answer
	// generation call. Takes {{.Location}}.
	Assistant SinglePrompt     `yaml:"assistant"`
	Schemes   SinglePrompt     `yaml:"schemes"`
	Translate TranslatePrompts `yaml:"translate"`
}

// LoadPrompts reads and parses a YAML prompt configuration file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var prompts Prompts
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}

	return &prompts, nil
}

// RenderPrompt executes Go template interpolation on a prompt string.
// The data map provides values for template placeholders like {{.Text}},
// {{.Location}}, and {{.ScriptInstruction}}.
func RenderPrompt(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
