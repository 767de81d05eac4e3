package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeService struct {
	lastTranslate gateway.TranslationRequest
	lastContext   gateway.ContextRequest
	lastText      string
}

func (f *fakeService) Translate(_ context.Context, req gateway.TranslationRequest) (*gateway.TranslationResult, error) {
	f.lastTranslate = req
	return &gateway.TranslationResult{TranslatedText: "Hola", DetectedLanguage: "English"}, nil
}

func (f *fakeService) DetectLanguage(_ context.Context, req gateway.LanguageDetectionRequest) (*gateway.LanguageDetectionResult, error) {
	f.lastText = req.Text
	return &gateway.LanguageDetectionResult{Language: "French"}, nil
}

func (f *fakeService) SynthesizeSpeech(_ context.Context, req gateway.SpeechRequest) (*gateway.SpeechResult, error) {
	f.lastText = req.Text
	return &gateway.SpeechResult{Media: "data:audio/wav;base64,UklGRgAAAABXQVZF"}, nil
}

func (f *fakeService) DetectContextualInfo(_ context.Context, req gateway.ContextRequest) (*gateway.ContextResult, error) {
	f.lastContext = req
	return &gateway.ContextResult{ContextualInformation: "A common greeting."}, nil
}

func run(t *testing.T, svc gateway.Service, stdin string, args ...string) (string, error) {
	t.Helper()
	factory := func(context.Context) (gateway.Service, error) { return svc, nil }
	cmd := NewRootCommand(factory, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTranslateText(t *testing.T) {
	svc := &fakeService{}
	out, err := run(t, svc, "", "translate", "--to", "Spanish", "Hello", "world")
	require.NoError(t, err)

	assert.Equal(t, "Hello world", svc.lastTranslate.Text)
	assert.Equal(t, "Spanish", svc.lastTranslate.TargetLanguage)
	assert.Contains(t, out, "Hola")
	assert.Contains(t, out, "English")
}

func TestTranslateDefaultsToEnglish(t *testing.T) {
	svc := &fakeService{}
	_, err := run(t, svc, "", "translate", "Hola")
	require.NoError(t, err)
	assert.Equal(t, "English", svc.lastTranslate.TargetLanguage)
}

func TestDetectFromStdinJSON(t *testing.T) {
	svc := &fakeService{}
	out, err := run(t, svc, "Bonjour\n", "detect", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", svc.lastText)

	var got gateway.LanguageDetectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "French", got.Language)
}

func TestContextYAML(t *testing.T) {
	svc := &fakeService{}
	out, err := run(t, svc, "", "context", "--word", "Salam,", "--language", "Azerbaijani", "--output", "yaml", "Salam, dünya")
	require.NoError(t, err)
	assert.Equal(t, "Salam,", svc.lastContext.Word)
	assert.Equal(t, "Azerbaijani", svc.lastContext.Language)

	var got gateway.ContextResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "A common greeting.", got.ContextualInformation)
}

func TestContextRequiresFlags(t *testing.T) {
	_, err := run(t, &fakeService{}, "", "context", "Salam")
	assert.Error(t, err)
}

func TestSpeakWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	out, err := run(t, &fakeService{}, "", "speak", "--out", path, "Hello")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(b[:4]))
	assert.Contains(t, out, path)
}

func TestSpeakPrintsDataURI(t *testing.T) {
	out, err := run(t, &fakeService{}, "", "speak", "Hello")
	require.NoError(t, err)
	assert.Contains(t, out, "data:audio/wav;base64,")
}

func TestLanguagesNeedsNoService(t *testing.T) {
	factory := func(context.Context) (gateway.Service, error) {
		return nil, errors.New("no API key")
	}
	cmd := NewRootCommand(factory, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"languages"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Spanish")
	assert.Contains(t, out.String(), "(default)")
}

func TestFactoryErrorSurfaces(t *testing.T) {
	factory := func(context.Context) (gateway.Service, error) {
		return nil, errors.New("GEMINI_API_KEY must be set")
	}
	cmd := NewRootCommand(factory, "test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"detect", "Hello"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, &fakeService{}, "", "detect", "-o", "xml", "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestDecodeDataURI(t *testing.T) {
	_, err := decodeDataURI("data:audio/mp3;base64,AAAA")
	assert.Error(t, err)

	_, err = decodeDataURI("data:audio/wav;base64,***")
	assert.Error(t, err)

	b, err := decodeDataURI("data:audio/wav;base64,UklGRg==")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(b))
}
