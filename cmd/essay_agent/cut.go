package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/essay-assistant/internal/observability"
	"github.com/jonathan/essay-assistant/internal/textclean"
	"github.com/jonathan/essay-assistant/internal/types"
	"github.com/jonathan/essay-assistant/internal/wordcut"
	"github.com/spf13/cobra"
)

var cutCmd = &cobra.Command{
	Use:   "cut-words",
	Short: "Suggest edits to bring an essay under a word limit",
	RunE:  runCut,
}

var (
	cutEssayFile    string
	cutPrompt       string
	cutInstructions string
	cutWordLimit    int
	cutConfigPath   string
	cutJSON         bool
)

func init() {
	cutCmd.Flags().StringVarP(&cutEssayFile, "essay", "e", "", "Path to essay text file (required)")
	cutCmd.Flags().IntVarP(&cutWordLimit, "limit", "l", 0, "Target word limit (required)")
	cutCmd.Flags().StringVarP(&cutPrompt, "prompt", "p", "", "Essay prompt the essay responds to")
	cutCmd.Flags().StringVarP(&cutInstructions, "instructions", "i", "", "Additional instructions")
	cutCmd.Flags().StringVar(&cutConfigPath, "config", "", "Path to JSON config file")
	cutCmd.Flags().BoolVar(&cutJSON, "json", false, "Print the raw JSON response instead of formatted output")

	cutCmd.MarkFlagRequired("essay")
	cutCmd.MarkFlagRequired("limit")

	rootCmd.AddCommand(cutCmd)
}

func runCut(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cutConfigPath)
	if err != nil {
		return err
	}
	if cutWordLimit <= 0 {
		return fmt.Errorf("--limit must be a positive word count")
	}

	data, err := os.ReadFile(cutEssayFile)
	if err != nil {
		return fmt.Errorf("failed to read essay file: %w", err)
	}
	essayText := textclean.StripPromptPrefix(string(data), cutPrompt)
	if essayText == "" {
		return fmt.Errorf("essay file %s contains no essay text", cutEssayFile)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Word cutting only needs the LLM client, not the retrieval stack.
	client, _, err := buildLLM(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := wordcut.New(client).Cut(ctx, types.WordCutRequest{
		EssayText:        essayText,
		EssayPrompt:      cutPrompt,
		UserInstructions: cutInstructions,
		WordLimit:        cutWordLimit,
	})
	if err != nil {
		return fmt.Errorf("word cut failed: %w", err)
	}

	if cutJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	observability.NewPrinter(os.Stdout).PrintWordCut(resp)
	return nil
}
