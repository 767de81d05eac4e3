package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	languageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", f)
	}
}

// field is one labelled line of text output.
type field struct {
	label string
	value string
	style lipgloss.Style
}

// render writes v as JSON or YAML, or the fields as styled text.
func render(w io.Writer, format string, v any, fields ...field) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "%s %s\n", labelStyle.Render(f.label+":"), f.style.Render(f.value)); err != nil {
				return err
			}
		}
		return nil
	}
}
