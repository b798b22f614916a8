package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/language"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"github.com/gramvaani/gramvaani-api/internal/pipeline"
)

// Answerer is the multilingual answer pipeline contract the assistant
// orchestrates. Satisfied by *pipeline.Pipeline.
type Answerer interface {
	Answer(ctx context.Context, transcript pipeline.Transcript, lang language.Language, locationHint string) pipeline.Result
}

// AssistantService runs the full query flow: normalize the input, answer it,
// render the spoken reply, and log the exchange. It always produces a normal
// response; collaborator failures degrade the content, never the envelope.
type AssistantService struct {
	Cfg        *config.Config
	Normalizer *pipeline.Normalizer
	Pipeline   Answerer
	Renderer   *pipeline.Renderer
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(cfg *config.Config, normalizer *pipeline.Normalizer, answerer Answerer, renderer *pipeline.Renderer) *AssistantService {
	return &AssistantService{
		Cfg:        cfg,
		Normalizer: normalizer,
		Pipeline:   answerer,
		Renderer:   renderer,
	}
}

// QueryResponse is the outcome of one assistant query.
type QueryResponse struct {
	Transcript   string
	Response     string
	Audio        []byte
	AudioURL     string
	UsedFallback bool
}

// ProcessVoice transcribes an audio query and answers it in the declared
// language. When recognition fails, the pipeline is never invoked: the canned
// reply is substituted, rendered, and logged under the voice category.
func (s *AssistantService) ProcessVoice(ctx context.Context, user *models.User, audio []byte, lang language.Language) *QueryResponse {
	transcript := s.Normalizer.FromAudio(ctx, audio, lang)
	if transcript.IsUnrecognized() {
		reply := pipeline.UnrecognizedReply
		replyAudio, audioURL := s.Renderer.Render(ctx, reply, s.archiveKey(user))
		s.Renderer.Log(user.Email, "[unrecognized audio]", reply, models.CategoryVoice)
		return &QueryResponse{
			Transcript: "",
			Response:   reply,
			Audio:      replyAudio,
			AudioURL:   audioURL,
		}
	}

	result := s.Pipeline.Answer(ctx, transcript, lang, user.Location)
	replyAudio, audioURL := s.Renderer.Render(ctx, result.Text, s.archiveKey(user))
	s.Renderer.Log(user.Email, string(transcript), result.Text, models.CategoryVoice)

	return &QueryResponse{
		Transcript:   string(transcript),
		Response:     result.Text,
		Audio:        replyAudio,
		AudioURL:     audioURL,
		UsedFallback: result.UsedFallback,
	}
}

// ProcessText answers a typed query in the declared language. Text replies
// are not synthesized; the client already has the text.
func (s *AssistantService) ProcessText(ctx context.Context, user *models.User, text string, lang language.Language) *QueryResponse {
	transcript := s.Normalizer.FromText(text)
	result := s.Pipeline.Answer(ctx, transcript, lang, user.Location)
	s.Renderer.Log(user.Email, text, result.Text, models.CategoryText)

	return &QueryResponse{
		Transcript:   text,
		Response:     result.Text,
		UsedFallback: result.UsedFallback,
	}
}

func (s *AssistantService) archiveKey(user *models.User) string {
	return fmt.Sprintf("replies/%d/%s.mp3", user.ID, uuid.New().String())
}
