package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/language"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"go.uber.org/zap"
)

// FallbackText is the fixed English apology substituted when any pipeline
// sub-call fails.
const FallbackText = "I'm here to help you with farming, weather, and government schemes. Please try again."

// UnrecognizedReply is the canned answer callers substitute when speech
// recognition fails, before the pipeline is ever invoked.
const UnrecognizedReply = "Sorry, I could not understand that. Please try speaking again."

// Result is the outcome of answering one query. The pipeline always produces
// a Result; per-call collaborator failures are absorbed into the fallback.
type Result struct {
	Text         string
	Language     language.Language
	UsedFallback bool
}

// Pipeline answers queries through the generation collaborator. English
// queries take a single persona call; every other language takes three
// strictly sequential calls: translate to English, answer, translate back.
type Pipeline struct {
	gen     ai.Generation
	prompts *config.Prompts
	tuning  config.Tuning
}

// New creates a Pipeline. A missing generation collaborator or prompt set is
// a configuration error and fatal at startup, not a per-request condition.
func New(gen ai.Generation, prompts *config.Prompts, tuning config.Tuning) (*Pipeline, error) {
	if gen == nil {
		return nil, errors.New("pipeline requires a generation provider")
	}
	if prompts == nil {
		return nil, errors.New("pipeline requires prompt configuration")
	}
	return &Pipeline{gen: gen, prompts: prompts, tuning: tuning}, nil
}

// Answer produces the final answer for a transcript in the requested
// language. It never returns an error: any sub-call failure yields the fixed
// fallback text with UsedFallback set. The caller must short-circuit the
// unrecognized sentinel before calling; Answer guards against it anyway.
func (p *Pipeline) Answer(ctx context.Context, transcript Transcript, lang language.Language, locationHint string) Result {
	if transcript.IsUnrecognized() {
		logger.Get().Warn("unrecognized transcript reached the answer pipeline")
		return Result{Text: FallbackText, Language: lang, UsedFallback: true}
	}

	if lang.IsEnglish() {
		return p.answerEnglish(ctx, transcript, lang, locationHint)
	}
	return p.answerTranslated(ctx, transcript, lang, locationHint)
}

// answerEnglish issues the single persona call.
func (p *Pipeline) answerEnglish(ctx context.Context, transcript Transcript, lang language.Language, locationHint string) Result {
	answer, err := p.generateAnswer(ctx, string(transcript), locationHint)
	if err != nil {
		return p.fallback(lang, "answer generation", err)
	}
	return Result{Text: answer, Language: lang}
}

// answerTranslated runs the three-call chain. Each call depends on the
// previous result; the first failure aborts the rest.
func (p *Pipeline) answerTranslated(ctx context.Context, transcript Transcript, lang language.Language, locationHint string) Result {
	englishQuery, err := p.translateToEnglish(ctx, string(transcript))
	if err != nil {
		return p.fallback(lang, "forward translation", err)
	}

	englishAnswer, err := p.generateAnswer(ctx, englishQuery, locationHint)
	if err != nil {
		return p.fallback(lang, "answer generation", err)
	}

	localized, err := p.translateFromEnglish(ctx, englishAnswer, lang)
	if err != nil {
		return p.fallback(lang, "back translation", err)
	}

	return Result{Text: localized, Language: lang}
}

func (p *Pipeline) translateToEnglish(ctx context.Context, text string) (string, error) {
	prompt, err := config.RenderPrompt(p.prompts.Translate.ToEnglish, map[string]interface{}{
		"Text": text,
	})
	if err != nil {
		return "", err
	}

	out, err := p.gen.Complete(ctx, "", prompt, p.tuning.TranslationMaxTokens, p.tuning.TranslationTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *Pipeline) generateAnswer(ctx context.Context, englishQuery, locationHint string) (string, error) {
	if locationHint == "" {
		locationHint = "India"
	}
	systemPrompt, err := config.RenderPrompt(p.prompts.Assistant.System, map[string]interface{}{
		"Location": locationHint,
	})
	if err != nil {
		return "", err
	}

	return p.gen.Complete(ctx, systemPrompt, englishQuery, p.tuning.AnswerMaxTokens, p.tuning.AnswerTemperature)
}

func (p *Pipeline) translateFromEnglish(ctx context.Context, englishAnswer string, lang language.Language) (string, error) {
	prompt, err := config.RenderPrompt(p.prompts.Translate.FromEnglish, map[string]interface{}{
		"Text":              englishAnswer,
		"Language":          lang.DisplayName(),
		"ScriptInstruction": lang.ScriptInstruction(),
	})
	if err != nil {
		return "", err
	}

	out, err := p.gen.Complete(ctx, "", prompt, p.tuning.TranslationMaxTokens, p.tuning.TranslationTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// fallback records the sub-call failure and substitutes the fixed apology.
func (p *Pipeline) fallback(lang language.Language, step string, err error) Result {
	logger.Get().Error("pipeline step failed, returning fallback",
		zap.String("step", step),
		zap.String("language", string(lang)),
		zap.Error(err))
	return Result{Text: FallbackText, Language: lang, UsedFallback: true}
}
