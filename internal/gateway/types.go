package gateway

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTextLength bounds every text input, in characters.
const DefaultMaxTextLength = 5000

// DefaultTargetLanguage is used when a translation request names none.
const DefaultTargetLanguage = "English"

// Languages offered as translation targets by the frontend and CLI.
var Languages = []string{
	"English", "Spanish", "French", "German", "Chinese (Simplified)", "Japanese",
	"Korean", "Russian", "Portuguese", "Italian", "Arabic", "Hindi", "Turkish",
	"Dutch", "Polish", "Indonesian", "Vietnamese",
}

type TranslationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslationResult struct {
	TranslatedText   string `json:"translatedText" yaml:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage" yaml:"detectedLanguage"`
}

type LanguageDetectionRequest struct {
	Text string `json:"text"`
}

type LanguageDetectionResult struct {
	Language string `json:"language" yaml:"language"`
}

type SpeechRequest struct {
	Text string `json:"text"`
}

// SpeechResult carries a data:audio/wav;base64 URI.
type SpeechResult struct {
	Media string `json:"media" yaml:"media"`
}

type ContextRequest struct {
	Text     string `json:"text"`
	Word     string `json:"word"`
	Language string `json:"language"`
}

type ContextResult struct {
	ContextualInformation string `json:"contextualInformation" yaml:"contextualInformation"`
}

func checkText(field, text string, limit int) error {
	if strings.TrimSpace(text) == "" {
		return invalid(field, "must not be empty")
	}
	if n := utf8.RuneCountInString(text); n > limit {
		return invalid(field, fmt.Sprintf("must be at most %d characters, got %d", limit, n))
	}
	return nil
}

func checkRequired(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, "is required")
	}
	return nil
}

// wordPunctuation is stripped from a selected word before looking it up.
const wordPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// CleanWord removes punctuation and surrounding whitespace from a word picked
// out of a translated sentence.
func CleanWord(word string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(wordPunctuation, r) {
			return -1
		}
		return r
	}, word)
	return strings.TrimSpace(cleaned)
}
