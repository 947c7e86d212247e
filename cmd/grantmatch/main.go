// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/poiesic/grantmatch"
	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/ingestion"
	"github.com/poiesic/grantmatch/match"
	"github.com/poiesic/grantmatch/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "grantmatch",
		Usage: "Match public-sector buyers with grant programs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"GRANTMATCH_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			_ = godotenv.Load()
			return setupLogger(c)
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Load both corpora and serve the HTTP API",
				Action: serveCommand,
				Flags:  append(serviceFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"GRANTMATCH_ADDR"},
					},
					&cli.StringSliceFlag{
						Name:    "allowed-origin",
						Usage:   "Origin allowed to call the API (repeatable)",
						Value:   cli.NewStringSlice(server.DefaultAllowedOrigin),
						EnvVars: []string{"GRANTMATCH_ALLOWED_ORIGINS"},
					},
				),
			},
			{
				Name:   "match",
				Usage:  "Run a single query and print the ranked grants",
				Action: matchCommand,
				Flags:  append(serviceFlags(),
					&cli.StringFlag{
						Name:  "agency-type",
						Usage: "Agency type, e.g. \"Fire Department\"",
					},
					&cli.StringFlag{
						Name:     "product-type",
						Usage:    "Product being sold, e.g. \"drone\"",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "state",
						Usage: "Two-letter state code",
					},
					&cli.IntFlag{
						Name:  "top-k-buyers",
						Usage: "Number of buyers to consider",
						Value: server.DefaultTopK,
					},
					&cli.IntFlag{
						Name:  "top-k-grants",
						Usage: "Number of grants to consider per buyer",
						Value: server.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				),
			},
			{
				Name:   "warm",
				Usage:  "Embed both corpora into the cache without serving",
				Action: warmCommand,
				Flags:  append(serviceFlags(),
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Drop the cached vectors and checkpoints for the embedding model first",
					},
				),
			},
		},
	}
}

// serviceFlags returns a fresh set of the flags shared by every command.
func serviceFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "buyers",
			Usage:    "Buyer records: a CSV path or sqlite:<path>#<table>",
			EnvVars:  []string{"GRANTMATCH_BUYERS"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "grants",
			Usage:    "Grant records: a CSV path or sqlite:<path>#<table>",
			EnvVars:  []string{"GRANTMATCH_GRANTS"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"d"},
			Usage:   "Path to the BadgerDB embedding cache (disabled when empty)",
			EnvVars: []string{"GRANTMATCH_CACHE"},
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Host URL for both the embedding and chat services",
			Value:   defaults.EmbeddingHost,
			EnvVars: []string{"GRANTMATCH_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (defaults to --host)",
			EnvVars: []string{"GRANTMATCH_EMBEDDING_HOST", "AZURE_OPENAI_EMBEDDING_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "Chat service host URL (defaults to --host)",
			EnvVars: []string{"GRANTMATCH_CHAT_HOST", "AZURE_OPENAI_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   defaults.EmbeddingModel,
			EnvVars: []string{"GRANTMATCH_EMBEDDING_MODEL", "AZURE_OPENAI_EMBEDDING_DEPLOYMENT"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model name",
			Value:   defaults.ChatModel,
			EnvVars: []string{"GRANTMATCH_CHAT_MODEL", "AZURE_OPENAI_DEPLOYMENT_NAME"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for both services",
			EnvVars: []string{"OPENAI_API_KEY", "AZURE_OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "azure-api-version",
			Usage:   "Use the Azure OpenAI API with this version",
			EnvVars: []string{"AZURE_OPENAI_VERSION"},
		},
		&cli.StringFlag{
			Name:    "scoring-config",
			Usage:   "JSON file overriding the scoring weights and thresholds",
			EnvVars: []string{"GRANTMATCH_SCORING_CONFIG"},
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Concurrent embedding requests during a build (0 = half the CPUs)",
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Texts per embedding request during a build",
			Value: ingestion.DefaultBatchSize,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Retry attempts for a failed embedding batch",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 1 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Report embedding progress on stderr",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithAzureAPIVersion(c.String("azure-api-version")),
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("chat-host"); host != "" {
		opts = append(opts, ai.WithChatHost(host))
	}
	return ai.NewConfig(opts...)
}

func newService(c *cli.Context) (*grantmatch.Service, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	if c.Int("batch-size") <= 0 {
		return nil, errors.New("batch-size must be greater than 0")
	}
	if c.Int("pool-size") < 0 {
		return nil, errors.New("pool-size must not be negative")
	}
	if c.Int("max-retries") < 0 {
		return nil, errors.New("max-retries must not be negative")
	}

	opts := []grantmatch.Option{
		grantmatch.WithAIConfig(aiConfig),
		grantmatch.WithSources(ingestion.Source(c.String("buyers")), ingestion.Source(c.String("grants"))),
		grantmatch.WithBatchSize(c.Int("batch-size")),
		grantmatch.WithPoolSize(c.Int("pool-size")),
		grantmatch.WithRetries(c.Int("max-retries"), c.Duration("retry-delay")),
		grantmatch.WithLogger(slog.Default()),
	}
	if path := c.String("cache"); path != "" {
		opts = append(opts, grantmatch.WithCachePath(path))
	}
	if path := c.String("scoring-config"); path != "" {
		cfg, err := match.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load scoring config: %w", err)
		}
		opts = append(opts, grantmatch.WithMatchConfig(cfg))
	}
	if c.Bool("progress") {
		opts = append(opts, grantmatch.WithProgress(os.Stderr))
	}
	if strings.EqualFold(c.String("log-level"), "debug") {
		opts = append(opts, grantmatch.WithMonitor(match.NewLoggingMonitor(slog.Default())))
	}

	svc, err := grantmatch.NewService(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	corpus, err := svc.Reload(ctx)
	if err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}
	slog.Info("corpus ready", "buyers", corpus.Buyers.Len(), "grants", corpus.Grants.Len())

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(svc, svc.Advisor(),
		server.WithAllowedOrigins(c.StringSlice("allowed-origin")...),
		server.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx, c.String("addr"))
}

func matchCommand(c *cli.Context) error {
	ctx := c.Context

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, err := svc.Reload(ctx); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	query := core.RepQuery{
		AgencyType:  c.String("agency-type"),
		ProductType: c.String("product-type"),
		State:       c.String("state"),
	}
	results, err := svc.Match(ctx, query, c.Int("top-k-buyers"), c.Int("top-k-grants"))
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, results)
	}
	return writeTable(c.App.Writer, results)
}

func warmCommand(c *cli.Context) error {
	if c.String("cache") == "" {
		return errors.New("warm requires --cache")
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if c.Bool("reset") {
		removed, err := svc.ResetCache(c.Context)
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Removed %d cached vectors.\n", removed)
	}

	results, err := svc.Warm(c.Context)
	if err != nil {
		return fmt.Errorf("warm failed: %w", err)
	}
	return writeWarm(c.App.Writer, results)
}

func writeJSON(w io.Writer, results []core.MatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTable(w io.Writer, results []core.MatchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching grants.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCONFIDENCE\tGRANT\tAGENCY\tAMOUNT\tDEADLINE\tBUYER")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\t%s\t%s\n",
			i+1, r.ConfidenceScore, r.GrantTitle, r.Agency, r.Amount, r.Deadline, r.BuyerAgency)
	}
	return tw.Flush()
}

func writeWarm(w io.Writer, results []grantmatch.WarmResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CORPUS\tRECORDS\tSTATUS\tHITS\tMISSES")
	for _, r := range results {
		status := "embedded"
		if r.Skipped {
			status = "unchanged"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n", r.Corpus, r.Records, status, r.Hits, r.Misses)
	}
	return tw.Flush()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
