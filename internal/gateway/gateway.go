// Package gateway implements the AI gateway functions: translation, language
// detection, speech synthesis and contextual word information. Each call
// validates its input, fills a fixed prompt, makes one model round trip and
// validates the model output.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/audio"
	"google.golang.org/genai"
)

// Generator is the hosted model. Implementations must be safe for concurrent use.
type Generator interface {
	// GenerateJSON returns the model's JSON answer to prompt, constrained by schema.
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)

	// GenerateSpeech returns raw 16-bit little-endian mono PCM at 24 kHz.
	// An empty result means the model produced no audio.
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

// Service is the set of gateway functions exposed to HTTP and CLI callers.
type Service interface {
	Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error)
	DetectLanguage(ctx context.Context, req LanguageDetectionRequest) (*LanguageDetectionResult, error)
	SynthesizeSpeech(ctx context.Context, req SpeechRequest) (*SpeechResult, error)
	DetectContextualInfo(ctx context.Context, req ContextRequest) (*ContextResult, error)
}

// Ensure Gateway implements Service.
var _ Service = (*Gateway)(nil)

// Gateway implements Service on top of a Generator.
type Gateway struct {
	gen     Generator
	maxText int
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMaxTextLength lowers the input bound. Values outside
// 1..DefaultMaxTextLength are ignored.
func WithMaxTextLength(n int) Option {
	return func(g *Gateway) {
		if n > 0 && n <= DefaultMaxTextLength {
			g.maxText = n
		}
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Gateway that calls gen.
func New(gen Generator, opts ...Option) (*Gateway, error) {
	if gen == nil {
		return nil, errors.New("gateway: generator is required")
	}
	g := &Gateway{
		gen:     gen,
		maxText: DefaultMaxTextLength,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MaxTextLength returns the configured input bound.
func (g *Gateway) MaxTextLength() int {
	return g.maxText
}

// Translate translates req.Text into req.TargetLanguage and reports the
// detected source language.
func (g *Gateway) Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error) {
	const op = "translate"
	if err := checkText("text", req.Text, g.maxText); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		req.TargetLanguage = DefaultTargetLanguage
	}

	var out TranslationResult
	if err := g.structured(ctx, op, translatePrompt, req, translationSchema, &out); err != nil {
		return nil, err
	}
	if err := requireOutput(op, "translatedText", out.TranslatedText); err != nil {
		return nil, err
	}
	if err := requireOutput(op, "detectedLanguage", out.DetectedLanguage); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetectLanguage names the language req.Text is written in.
func (g *Gateway) DetectLanguage(ctx context.Context, req LanguageDetectionRequest) (*LanguageDetectionResult, error) {
	const op = "detect_language"
	if err := checkText("text", req.Text, g.maxText); err != nil {
		return nil, err
	}

	var out LanguageDetectionResult
	if err := g.structured(ctx, op, detectLanguagePrompt, req, languageSchema, &out); err != nil {
		return nil, err
	}
	if err := requireOutput(op, "language", out.Language); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetectContextualInfo explains req.Word as used in req.Text.
func (g *Gateway) DetectContextualInfo(ctx context.Context, req ContextRequest) (*ContextResult, error) {
	const op = "context"
	if err := checkText("text", req.Text, g.maxText); err != nil {
		return nil, err
	}
	req.Word = CleanWord(req.Word)
	if err := checkRequired("word", req.Word); err != nil {
		return nil, err
	}
	if err := checkRequired("language", req.Language); err != nil {
		return nil, err
	}

	var out ContextResult
	if err := g.structured(ctx, op, contextPrompt, req, contextSchema, &out); err != nil {
		return nil, err
	}
	if err := requireOutput(op, "contextualInformation", out.ContextualInformation); err != nil {
		return nil, err
	}
	return &out, nil
}

// SynthesizeSpeech reads req.Text aloud and returns a WAV data URI.
func (g *Gateway) SynthesizeSpeech(ctx context.Context, req SpeechRequest) (*SpeechResult, error) {
	const op = "speech"
	if err := checkText("text", req.Text, g.maxText); err != nil {
		return nil, err
	}

	start := time.Now()
	pcm, err := g.gen.GenerateSpeech(ctx, req.Text)
	if err != nil {
		return nil, upstream(op, err)
	}
	if len(pcm) == 0 {
		return nil, upstream(op, ErrNoMedia)
	}

	uri, err := audio.SpeechDataURI(pcm)
	if err != nil {
		return nil, upstream(op, err)
	}
	g.logger.Debug("Gateway call completed", "op", op, "pcm_bytes", len(pcm), "duration", time.Since(start))
	return &SpeechResult{Media: uri}, nil
}

func (g *Gateway) structured(ctx context.Context, op string, tmpl *template.Template, data any, schema *genai.Schema, out any) error {
	prompt, err := render(tmpl, data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	raw, err := g.gen.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		return upstream(op, err)
	}
	if err := decodeOutput(raw, out); err != nil {
		return upstream(op, err)
	}
	g.logger.Debug("Gateway call completed", "op", op, "response_bytes", len(raw), "duration", time.Since(start))
	return nil
}

// decodeOutput parses the model's JSON, tolerating a surrounding code fence.
func decodeOutput(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	if raw == "" {
		return errors.New("empty model response")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func requireOutput(op, field, v string) error {
	if strings.TrimSpace(v) == "" {
		return upstream(op, fmt.Errorf("model response is missing %q", field))
	}
	return nil
}
