// Package gemini adapts the Google GenAI SDK to the gateway's Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/config"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"google.golang.org/genai"
)

const (
	DefaultTextModel = "gemini-2.5-flash"
	DefaultTTSModel  = "gemini-2.5-flash-preview-tts"
	DefaultVoice     = "Algenib"

	defaultRequestTimeout = 60 * time.Second
)

var errEmptyText = errors.New("model returned no text")

// Ensure Client implements gateway.Generator.
var _ gateway.Generator = (*Client)(nil)

// contentGenerator is the subset of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls the Gemini API.
type Client struct {
	models         contentGenerator
	textModel      string
	ttsModel       string
	voice          string
	requestTimeout time.Duration
	logger         *slog.Logger
}

// NewClient creates a Gemini client from cfg.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	c := newClient(sdk.Models, cfg, logger)
	logger.Info("Gemini client ready", "text_model", c.textModel, "tts_model", c.ttsModel, "voice", c.voice)
	return c, nil
}

func newClient(models contentGenerator, cfg config.GeminiConfig, logger *slog.Logger) *Client {
	return &Client{
		models:         models,
		textModel:      orDefault(cfg.TextModel, DefaultTextModel),
		ttsModel:       orDefault(cfg.TTSModel, DefaultTTSModel),
		voice:          orDefault(cfg.TTSVoice, DefaultVoice),
		requestTimeout: defaultRequestTimeout,
		logger:         logger,
	}
}

// GenerateJSON asks the text model for a JSON document matching schema.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", c.textModel, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errEmptyText
	}
	return text, nil
}

// GenerateSpeech asks the TTS model to read text aloud and returns the PCM
// payload. It returns gateway.ErrNoMedia when the response has no audio part.
func (c *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.ttsModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.voice},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate speech with %s: %w", c.ttsModel, err)
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, gateway.ErrNoMedia
	}
	c.logger.Debug("Speech generated", "model", c.ttsModel, "bytes", len(pcm))
	return pcm, nil
}

// inlineAudio returns the first inline data part of the first candidate.
func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
