package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/config"
	"github.com/jonathan/revops-assessment/internal/delivery"
	"github.com/jonathan/revops-assessment/internal/llm"
	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/report"
	"github.com/jonathan/revops-assessment/internal/types"
)

// deliveryTimeout bounds one background fan-out across all sinks.
const deliveryTimeout = 30 * time.Second

// loadConfig reads configuration and builds the logger every command shares.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// newComposer builds the report composer. Without an API key the composer
// runs in fallback-only mode. The returned func releases the generator.
func newComposer(ctx context.Context, cfg *config.Config, c *catalog.Catalog, logger *zap.Logger) (*report.Composer, func(), error) {
	llmCfg := cfg.LLMClientConfig()
	opts := []report.Option{
		report.WithLLMConfig(llmCfg),
		report.WithVariant(cfg.Variant()),
		report.WithLogger(logger),
	}

	cleanup := func() {}
	if cfg.GenerationEnabled() {
		client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		opts = append(opts, report.WithClient(client))
		cleanup = func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close LLM client", zap.Error(err))
			}
		}
	} else {
		logger.Info("GEMINI_API_KEY not set; reports use the templated fallback")
	}

	composer, err := report.NewComposer(c, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return composer, cleanup, nil
}

// newDispatcher builds the delivery fan-out from whichever sinks are configured.
func newDispatcher(ctx context.Context, cfg *config.Config, c *catalog.Catalog, logger *zap.Logger) (*delivery.Dispatcher, error) {
	var sinks []delivery.Sink

	if cfg.EmailEnabled() {
		client, err := delivery.NewSESClient(ctx, cfg.Email.Region)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, delivery.NewEmailSink(client, cfg.Email.From, cfg.Email.BookingURL, c))
	} else {
		logger.Info("email delivery disabled; EMAIL_FROM or AWS_REGION not set")
	}

	if cfg.WebhookEnabled() {
		sinks = append(sinks, delivery.NewWebhookSink(cfg.Webhook.URL, c, &http.Client{Timeout: cfg.Webhook.Timeout}))
	} else {
		logger.Info("webhook delivery disabled; GOOGLE_SHEETS_WEBHOOK_URL not set")
	}

	return delivery.NewDispatcher(logger, deliveryTimeout, sinks...), nil
}

// readResponses loads answers from a JSON file holding either
// {"responses": {...}} or the bare question-to-value map.
func readResponses(path string) (map[string]int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file %s: %w", path, err)
	}

	var wrapped types.ScoreRequest
	if err := json.Unmarshal(content, &wrapped); err == nil && wrapped.Responses != nil {
		return wrapped.Responses, nil
	}

	var raw map[string]int
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal responses JSON: %w", err)
	}
	return raw, nil
}
