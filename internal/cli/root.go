// Package cli implements the dilci command line client for the gateway.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/spf13/cobra"
)

// ServiceFactory builds the gateway on first use, so commands that never
// call the model (languages, --help) need no API key.
type ServiceFactory func(ctx context.Context) (gateway.Service, error)

type options struct {
	output  string
	factory ServiceFactory
}

func (o *options) service(ctx context.Context) (gateway.Service, error) {
	svc, err := o.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}
	return svc, nil
}

// NewRootCommand returns the dilci command tree.
func NewRootCommand(factory ServiceFactory, version string) *cobra.Command {
	opts := &options{factory: factory}

	root := &cobra.Command{
		Use:   "dilci",
		Short: "Translate, detect, explain and speak text from the terminal",
		Long: `dilci talks to the same AI gateway as the Dilçi web app.

Text is taken from the arguments, or from stdin when no arguments are given.

Examples:
  dilci translate --to Spanish "Good morning"
  echo "Bonjour" | dilci detect
  dilci context --word Salam --language Azerbaijani "Salam, dünya"
  dilci speak --out hello.wav "Hello"`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return checkFormat(opts.output)
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatText, "Output format: text, json or yaml")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newTranslateCommand(opts),
		newDetectCommand(opts),
		newContextCommand(opts),
		newSpeakCommand(opts),
		newLanguagesCommand(opts),
	)
	return root
}

// inputText joins args, or reads all of stdin when there are none.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
