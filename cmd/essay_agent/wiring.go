package main

import (
	"context"
	"fmt"

	"github.com/jonathan/essay-assistant/internal/analyzer"
	"github.com/jonathan/essay-assistant/internal/cache"
	"github.com/jonathan/essay-assistant/internal/cohere"
	"github.com/jonathan/essay-assistant/internal/config"
	"github.com/jonathan/essay-assistant/internal/llm"
	"github.com/jonathan/essay-assistant/internal/pinecone"
	"github.com/jonathan/essay-assistant/internal/retrieval"
	"github.com/jonathan/essay-assistant/internal/wordcut"
	"github.com/jonathan/essay-assistant/internal/workflow"
)

// buildLLM constructs the LLM client for the configured provider. The
// returned client also serves as the embedder.
func buildLLM(ctx context.Context, cfg *config.Config) (llm.Client, llm.Embedder, error) {
	var llmCfg *llm.Config
	var apiKey string
	switch cfg.LLMProvider {
	case "gemini":
		llmCfg = llm.DefaultGeminiConfig()
		apiKey = cfg.GeminiAPIKey
	default:
		llmCfg = llm.DefaultOpenAIConfig()
		apiKey = cfg.OpenAIAPIKey
	}

	if cfg.GenerateModel != "" {
		params := llmCfg.GetParams(llm.TierGenerate)
		params.Name = cfg.GenerateModel
		llmCfg = llmCfg.WithModel(llm.TierGenerate, params)
	}

	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	embedder, ok := client.(llm.Embedder)
	if !ok {
		client.Close()
		return nil, nil, fmt.Errorf("provider %s does not support embeddings", cfg.LLMProvider)
	}
	return client, embedder, nil
}

// buildAnalyzer wires the full analysis stack: LLM client, retrieval cache,
// vector store, reranker, suggestion workflow, and the analyzer on top.
// The returned cleanup closes the LLM client.
func buildAnalyzer(ctx context.Context, cfg *config.Config) (*analyzer.Analyzer, *wordcut.Cutter, func(), error) {
	client, embedder, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() { _ = client.Close() }

	pc, err := pinecone.New(pinecone.Config{
		APIKey:    cfg.PineconeAPIKey,
		IndexHost: cfg.PineconeIndexHost,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("failed to create vector store client: %w", err)
	}

	co, err := cohere.New(cohere.Config{APIKey: cfg.CohereAPIKey})
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("failed to create reranker client: %w", err)
	}

	c := cache.New(cache.Options{MaxSize: cfg.CacheMaxSize})
	builder := retrieval.NewBuilder(embedder, retrieval.NewPineconeSearcher(pc), co, c)

	var wfOpts []workflow.Option
	if cfg.QualityThreshold > 0 {
		wfOpts = append(wfOpts, workflow.WithQualityThreshold(cfg.QualityThreshold))
	}
	if cfg.MaxIterations > 0 {
		wfOpts = append(wfOpts, workflow.WithMaxIterations(cfg.MaxIterations))
	}
	controller := workflow.NewController(client, wfOpts...)

	return analyzer.New(client, builder, controller), wordcut.New(client), cleanup, nil
}

// loadConfig merges the environment with an optional config file.
func loadConfig(configPath string) (*config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.Merge(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
