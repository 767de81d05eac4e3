package gateway

import (
	"fmt"
	"strings"
	"text/template"

	"google.golang.org/genai"
)

var (
	translatePrompt = template.Must(template.New("translate").Parse(
		`Translate the following text to {{.TargetLanguage}} and also detect the language of the original text. ` +
			`Make sure to return the detected language in the "detectedLanguage" field and the translated text in the "translatedText" field.

Text: {{.Text}}`))

	detectLanguagePrompt = template.Must(template.New("detectLanguage").Parse(
		`What language is the following text in? Return just the language name in the "language" field.

Text: {{.Text}}`))

	contextPrompt = template.Must(template.New("context").Parse(
		`You are an AI expert in regional dialects and cultural contexts.

Given the original text, the specific word, and the language, provide detailed region-specific contextual information about the word.
Consider cultural significance, historical context, and regional nuances.
Return it in the "contextualInformation" field.

Original Text: {{.Text}}
Word: {{.Word}}
Language: {{.Language}}`))
)

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}

func stringField(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func objectSchema(fields map[string]*genai.Schema, order ...string) *genai.Schema {
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       fields,
		Required:         order,
		PropertyOrdering: order,
	}
}

var (
	translationSchema = objectSchema(map[string]*genai.Schema{
		"translatedText":   stringField("The translated text."),
		"detectedLanguage": stringField("The detected language of the input text."),
	}, "translatedText", "detectedLanguage")

	languageSchema = objectSchema(map[string]*genai.Schema{
		"language": stringField("The detected language of the text."),
	}, "language")

	contextSchema = objectSchema(map[string]*genai.Schema{
		"contextualInformation": stringField("Region-specific contextual information related to the word, including cultural significance, historical context, or regional nuances."),
	}, "contextualInformation")
)
