package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/essay-assistant/internal/observability"
	"github.com/jonathan/essay-assistant/internal/textclean"
	"github.com/jonathan/essay-assistant/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an essay against school guidelines and exemplar essays",
	Long:  "Run the full analysis workflow on an essay: iteratively refined content suggestions, language edits, and general feedback.",
	RunE:  runAnalyze,
}

var (
	analyzeEssayFile    string
	analyzeSchool       string
	analyzePrompt       string
	analyzeInstructions string
	analyzeConfigPath   string
	analyzeJSON         bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeEssayFile, "essay", "e", "", "Path to essay text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeSchool, "school", "s", "", "Target school name (required)")
	analyzeCmd.Flags().StringVarP(&analyzePrompt, "prompt", "p", "", "Essay prompt the essay responds to")
	analyzeCmd.Flags().StringVarP(&analyzeInstructions, "instructions", "i", "", "Additional instructions for the analysis")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw JSON response instead of formatted output")

	analyzeCmd.MarkFlagRequired("essay")
	analyzeCmd.MarkFlagRequired("school")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analyzeEssayFile)
	if err != nil {
		return fmt.Errorf("failed to read essay file: %w", err)
	}
	essayText := textclean.StripPromptPrefix(string(data), analyzePrompt)
	if essayText == "" {
		return fmt.Errorf("essay file %s contains no essay text", analyzeEssayFile)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	analysis, _, cleanup, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := analysis.Analyze(ctx, types.AnalysisRequest{
		EssayText:        essayText,
		EssayPrompt:      analyzePrompt,
		UserInstructions: analyzeInstructions,
		School:           analyzeSchool,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	observability.NewPrinter(os.Stdout).PrintAnalysis(resp)
	return nil
}
