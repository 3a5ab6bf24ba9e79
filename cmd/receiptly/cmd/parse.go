package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse [image files...]",
	Short: "Parse receipt images into expense records",
	Long: `Parse one or more receipt images and print the extracted expense
fields: amount, date, merchant, line items and category.

Supported formats: PNG, JPEG, BMP.

Examples:
  receiptly parse receipt.jpg
  receiptly parse receipt.png --format yaml
  receiptly parse *.jpg --output results.json
  receiptly parse receipt.jpg --no-preprocess --language deu`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}

	binary := cfg.Pipeline.Recognizer.Binary
	if cmd.Flags().Changed("tesseract") {
		binary, _ = cmd.Flags().GetString("tesseract")
	}

	language := cfg.Pipeline.Recognizer.Language
	if cmd.Flags().Changed("language") {
		language, _ = cmd.Flags().GetString("language")
	}

	psm := cfg.Pipeline.Recognizer.PSM
	if cmd.Flags().Changed("psm") {
		psm, _ = cmd.Flags().GetString("psm")
	}

	preprocess := cfg.Pipeline.Preprocess
	if noPre, _ := cmd.Flags().GetBool("no-preprocess"); noPre {
		preprocess = false
	}

	pl, err := pipeline.NewBuilder().
		WithPreprocessing(preprocess).
		WithRecognizerBinary(binary).
		WithRecognizerLanguage(language).
		WithRecognizerPSM(psm).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	var failed int
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		res := pl.Parse(cmd.Context(), data, http.DetectContentType(data))
		if !res.Success {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, res.Error)
			continue
		}

		text, err := pipeline.Format(res, format)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Fprintf(out, "# %s\n", path)
		}
		fmt.Fprintln(out, text)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d receipts failed to parse", failed, len(args))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("format", "f", "json", "output format (json, yaml, text)")
	parseCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	parseCmd.Flags().String("tesseract", "", "path to the tesseract binary")
	parseCmd.Flags().StringP("language", "l", "", "recognition language code (e.g. eng, deu)")
	parseCmd.Flags().String("psm", "", "tesseract page segmentation mode")
	parseCmd.Flags().Bool("no-preprocess", false, "skip grayscale/denoise/binarize preprocessing")
}
