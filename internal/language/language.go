// Package language defines the closed set of languages the assistant serves
// and the script rules applied when translating answers back to them.
package language

import "fmt"

// Language is an ISO-639-1 style code declared by the client.
type Language string

// Supported language codes.
const (
	English Language = "en"
	Hindi   Language = "hi"
	Marathi Language = "mr"
	Bengali Language = "bn"
	Tamil   Language = "ta"
	Telugu  Language = "te"
)

var displayNames = map[Language]string{
	English: "English",
	Hindi:   "Hindi",
	Marathi: "Marathi",
	Bengali: "Bengali",
	Tamil:   "Tamil",
	Telugu:  "Telugu",
}

// Parse normalizes a raw language code. Unknown codes are passed through
// unchanged so the pipeline still receives them; only the display name
// falls back to English.
func Parse(code string) Language {
	if code == "" {
		return English
	}
	return Language(code)
}

// IsEnglish reports whether the language takes the single-call answer path.
func (l Language) IsEnglish() bool {
	return l == English
}

// DisplayName returns the human-readable name for the language. Unknown
// codes fall back to the English display name.
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return displayNames[English]
}

// ScriptInstruction returns the script mandate appended to back-translation
// prompts. Hindi and Telugu name their scripts explicitly; other languages
// get a generic native-script instruction.
func (l Language) ScriptInstruction() string {
	switch l {
	case Hindi:
		return "Write the answer in Devanagari script only. Never use Arabic or Urdu script for Hindi."
	case Telugu:
		return "Write the answer in Telugu script only."
	default:
		return fmt.Sprintf("Use the proper native %s script.", l.DisplayName())
	}
}

// WhisperHint maps the language to the transcription service's language
// vocabulary. English maps to the empty string so Whisper auto-detects.
func (l Language) WhisperHint() string {
	if l.IsEnglish() {
		return ""
	}
	return string(l)
}
