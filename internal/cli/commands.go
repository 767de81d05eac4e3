package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/audio"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/spf13/cobra"
)

func newTranslateCommand(opts *options) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text and detect its source language",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Translate(cmd.Context(), gateway.TranslationRequest{Text: text, TargetLanguage: target})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, res,
				field{"Detected", res.DetectedLanguage, languageStyle},
				field{"Translation", res.TranslatedText, valueStyle},
			)
		},
	}
	cmd.Flags().StringVarP(&target, "to", "t", gateway.DefaultTargetLanguage, "Target language")
	return cmd
}

func newDetectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [text...]",
		Short: "Detect the language of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.DetectLanguage(cmd.Context(), gateway.LanguageDetectionRequest{Text: text})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, res,
				field{"Language", res.Language, languageStyle},
			)
		},
	}
}

func newContextCommand(opts *options) *cobra.Command {
	var word, language string
	cmd := &cobra.Command{
		Use:   "context [text...]",
		Short: "Explain a word as used in text, with regional and cultural context",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.DetectContextualInfo(cmd.Context(), gateway.ContextRequest{Text: text, Word: word, Language: language})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, res,
				field{"Word", gateway.CleanWord(word), languageStyle},
				field{"Context", res.ContextualInformation, valueStyle},
			)
		},
	}
	cmd.Flags().StringVarP(&word, "word", "w", "", "Word to explain")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Language of the text")
	_ = cmd.MarkFlagRequired("word")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}

func newSpeakCommand(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "speak [text...]",
		Short: "Synthesize speech; write a WAV file with --out or print the data URI",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.SynthesizeSpeech(cmd.Context(), gateway.SpeechRequest{Text: text})
			if err != nil {
				return err
			}
			if out == "" {
				return render(cmd.OutOrStdout(), opts.output, res,
					field{"Media", res.Media, noteStyle},
				)
			}

			wav, err := decodeDataURI(res.Media)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, wav, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			written := struct {
				File  string `json:"file" yaml:"file"`
				Bytes int    `json:"bytes" yaml:"bytes"`
			}{out, len(wav)}
			return render(cmd.OutOrStdout(), opts.output, written,
				field{"Wrote", fmt.Sprintf("%s (%d bytes)", out, len(wav)), valueStyle},
			)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the WAV audio to this file")
	return cmd
}

func newLanguagesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != formatText {
				return render(cmd.OutOrStdout(), opts.output, gateway.Languages)
			}
			for _, l := range gateway.Languages {
				line := valueStyle.Render(l)
				if l == gateway.DefaultTargetLanguage {
					line += " " + noteStyle.Render("(default)")
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, audio.WAVDataURIPrefix) {
		return nil, fmt.Errorf("unexpected media type in %.32q", uri)
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, audio.WAVDataURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return b, nil
}
