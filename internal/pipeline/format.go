package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats supported by the CLI and the HTTP format parameter.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Format renders a parse result in the requested output format.
func Format(res Result, format string) (string, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("formatting json: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("formatting yaml: %w", err)
		}
		return string(data), nil
	case FormatText:
		return formatPlainText(res), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
}

func formatPlainText(res Result) string {
	var b strings.Builder
	if !res.Success {
		fmt.Fprintf(&b, "parse failed: %s\n", res.Error)
		return b.String()
	}

	r := res.Receipt
	fmt.Fprintf(&b, "Merchant:    %s\n", r.Merchant)
	if r.Amount != nil {
		fmt.Fprintf(&b, "Amount:      %.2f\n", *r.Amount)
	} else {
		b.WriteString("Amount:      (not found)\n")
	}
	if r.Date != "" {
		fmt.Fprintf(&b, "Date:        %s\n", r.Date)
	}
	fmt.Fprintf(&b, "Category:    %s\n", r.Category)
	fmt.Fprintf(&b, "Description: %s\n", r.Description)
	if len(r.Items) > 0 {
		b.WriteString("Items:\n")
		for _, it := range r.Items {
			fmt.Fprintf(&b, "  %-30s %8.2f\n", it.Name, it.Price)
		}
	}
	return b.String()
}
