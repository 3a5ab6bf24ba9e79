package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/receiptly/internal/batch"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Parse many receipt images concurrently",
	Long: `Parse a set of receipt images or whole directories of them using a
bounded worker pool, and print the aggregated results.

Examples:
  receiptly batch receipts/
  receiptly batch receipts/ --recursive --workers 8
  receiptly batch receipts/ --include 'receipt_*' --format yaml
  receiptly batch a.png b.png --output results.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	bCfg := batch.DefaultConfig()
	bCfg.Pipeline.Preprocess = cfg.Pipeline.Preprocess
	if cfg.Pipeline.Recognizer.Binary != "" {
		bCfg.Pipeline.Recognizer.Binary = cfg.Pipeline.Recognizer.Binary
	}
	if cfg.Pipeline.Recognizer.Language != "" {
		bCfg.Pipeline.Recognizer.Language = cfg.Pipeline.Recognizer.Language
	}
	if cfg.Pipeline.Recognizer.PSM != "" {
		bCfg.Pipeline.Recognizer.PSM = cfg.Pipeline.Recognizer.PSM
	}

	if cmd.Flags().Changed("workers") {
		bCfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	bCfg.Recursive, _ = cmd.Flags().GetBool("recursive")
	bCfg.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	bCfg.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")

	if noPre, _ := cmd.Flags().GetBool("no-preprocess"); noPre {
		bCfg.Pipeline.Preprocess = false
	}

	res, err := batch.Process(cmd.Context(), args, bCfg)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}

	return res.SaveResults(format, outputFile)
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default GOMAXPROCS)")
	batchCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of file names to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of file names to exclude")
	batchCmd.Flags().StringP("format", "f", "json", "output format (json, yaml, text)")
	batchCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	batchCmd.Flags().Bool("no-preprocess", false, "skip grayscale/denoise/binarize preprocessing")
}
