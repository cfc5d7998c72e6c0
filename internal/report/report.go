// Package report renders recommendations for people and other programs.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

// Render writes rec to w in the requested format.
func Render(w io.Writer, format Format, rec *recommend.Recommendation) error {
	if rec == nil {
		return errors.New("recommendation is required")
	}

	switch format {
	case FormatText, "":
		return renderText(w, rec)
	case FormatJSON:
		return renderJSON(w, rec)
	case FormatYAML:
		return renderYAML(w, rec)
	case FormatXLSX:
		return renderXLSX(w, rec)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func renderJSON(w io.Writer, rec *recommend.Recommendation) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, rec *recommend.Recommendation) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(rec); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return encoder.Close()
}
