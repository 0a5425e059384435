package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/essay-assistant/internal/cache"
	"github.com/jonathan/essay-assistant/internal/fetch"
	"github.com/jonathan/essay-assistant/internal/ingestion"
	"github.com/jonathan/essay-assistant/internal/pinecone"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest exemplar essays into the vector store",
	Long:  "Ingest exemplar essays from a JSON file or a single essay from a URL, embed them, and upsert them into the vector index.",
	RunE:  runIngest,
}

var (
	ingestFile       string
	ingestURL        string
	ingestSchool     string
	ingestPrompt     string
	ingestFeedback   string
	ingestUseBrowser bool
	ingestVerbose    bool
	ingestConfigPath string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to JSON file of exemplar essays")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL of an essay archive page to ingest")
	ingestCmd.Flags().StringVarP(&ingestSchool, "school", "s", "", "School the essay was written for (required with --url)")
	ingestCmd.Flags().StringVarP(&ingestPrompt, "prompt", "p", "", "Essay prompt the essay responds to")
	ingestCmd.Flags().StringVar(&ingestFeedback, "feedback", "", "Expert feedback on the essay")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "browser", false, "Use a headless browser for JavaScript-rendered pages")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Verbose fetch logging")
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}
	if ingestURL != "" && ingestSchool == "" {
		return fmt.Errorf("--school is required when ingesting from a URL")
	}

	cfg, err := loadConfig(ingestConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var exemplars []ingestion.Exemplar
	if ingestFile != "" {
		exemplars, err = ingestion.LoadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to load exemplars: %w", err)
		}
	} else {
		fetcher := fetch.NewCachedFetcher(cache.New(cache.Options{MaxSize: cfg.CacheMaxSize}), nil)
		essay, err := ingestion.FromURL(ctx, fetcher, ingestURL, ingestUseBrowser, ingestVerbose)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
		exemplars = []ingestion.Exemplar{{
			Essay:    essay,
			Prompt:   ingestPrompt,
			School:   ingestSchool,
			Feedback: ingestFeedback,
		}}
	}

	client, embedder, err := buildLLM(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	pc, err := pinecone.New(pinecone.Config{
		APIKey:    cfg.PineconeAPIKey,
		IndexHost: cfg.PineconeIndexHost,
	})
	if err != nil {
		return fmt.Errorf("failed to create vector store client: %w", err)
	}

	stats, err := ingestion.NewPipeline(embedder, pc).Run(ctx, exemplars)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Ingested %d essays (%d failed)\n", stats.Ingested, stats.Failed)
	return nil
}
