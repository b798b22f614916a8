package ai

import "context"

// Generation handles chat-completion calls. Both the English single-call
// answer path and the translate/answer/translate-back chain go through this
// interface, one call at a time.
type Generation interface {
	Complete(ctx context.Context, systemPrompt, userText string, maxTokens int, temperature float32) (string, error)
}

// Transcription handles speech-to-text. languageHint uses the provider's own
// language vocabulary; an empty hint means auto-detect.
type Transcription interface {
	Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error)
}

// Synthesis handles text-to-speech.
type Synthesis interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
