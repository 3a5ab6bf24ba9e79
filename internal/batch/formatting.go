package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// FormatResults renders the batch outcome in the given format
// (json, yaml or text).
func (r *Result) FormatResults(format string) (string, error) {
	switch format {
	case pipeline.FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("failed to marshal batch result: %w", err)
		}
		return string(out), nil
	case pipeline.FormatText:
		return r.formatText(), nil
	case pipeline.FormatJSON, "":
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal batch result: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func (r *Result) formatText() string {
	var sb strings.Builder
	for _, e := range r.Entries {
		if e.Result.Success {
			text, err := pipeline.Format(e.Result, pipeline.FormatText)
			if err != nil {
				text = err.Error()
			}
			fmt.Fprintf(&sb, "%s:\n%s\n", e.Path, text)
		} else {
			fmt.Fprintf(&sb, "%s: FAILED: %s\n", e.Path, e.Result.Error)
		}
	}
	fmt.Fprintf(&sb, "\n%d receipts, %d failed, %v with %d workers\n",
		len(r.Entries), r.Failed, r.Duration.Round(time.Millisecond), r.WorkerCount)
	return sb.String()
}

// SaveResults writes the formatted result to outputFile, or stdout when
// outputFile is empty.
func (r *Result) SaveResults(format, outputFile string) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprint(os.Stdout, output)
	return err
}
