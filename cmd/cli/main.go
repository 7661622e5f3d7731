package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"lead-digest/internal/config"
	"lead-digest/internal/digest"
	"lead-digest/internal/ioformats"
	"lead-digest/internal/models"
	"lead-digest/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lead-digest",
		Usage: "summarize or extract keywords from the lead section of web pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file", EnvVars: []string{config.EnvConfigFile}},
			&cli.StringFlag{Name: "log-level", Value: "", Usage: "debug, info, warn or error (overrides config)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Usage:     "print bullet points for one URL",
				ArgsUsage: "URL",
				Action:    singleAction(digest.OpSummarize),
			},
			{
				Name:      "keywords",
				Usage:     "print the top keywords for one URL",
				ArgsUsage: "URL",
				Action:    singleAction(digest.OpKeywords),
			},
			{
				Name:  "batch",
				Usage: "process a CSV (with a 'url' column) or NDJSON file of URLs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input file"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output NDJSON file (default stdout)"},
					&cli.StringFlag{Name: "mode", Value: string(digest.OpSummarize), Usage: "summarize or keywords"},
					&cli.IntFlag{Name: "concurrency", Value: 10, Usage: "worker concurrency"},
				},
				Action: batchAction,
			},
		},
	}
}

func setup(c *cli.Context) (*digest.Service, *logger.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if v := c.String("log-level"); v != "" {
		level = v
	}
	l := logger.NewWithOptions(logger.Options{Level: level, File: cfg.Log.File})
	return digest.NewFromConfig(cfg, l), l, nil
}

func singleAction(op digest.Op) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("exactly one URL is required", 2)
		}
		svc, l, err := setup(c)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		defer l.Close()

		res, err := analyze(c.Context, svc, op, c.Args().First())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
}

func batchAction(c *cli.Context) error {
	op := digest.Op(c.String("mode"))
	if op != digest.OpSummarize && op != digest.OpKeywords {
		return cli.Exit(fmt.Sprintf("unknown mode %q", op), 2)
	}
	urls, err := ioformats.ReadURLs(c.String("input"))
	if err != nil {
		return cli.Exit("read input: "+err.Error(), 1)
	}
	svc, l, err := setup(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer l.Close()

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit("create output: "+err.Error(), 1)
		}
		defer f.Close()
		out = f
	}

	records := runBatch(c.Context, svc, op, urls, c.Int("concurrency"))
	failed := 0
	w := ioformats.NewNDJSONWriter(out)
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
		if err := w.Write(r); err != nil {
			return err
		}
	}
	l.Infof("processed %d urls, %d failed", len(records), failed)
	return nil
}

type analyzer interface {
	Summarize(ctx context.Context, url string) (models.SummaryResponse, error)
	Keywords(ctx context.Context, url string) (models.KeywordsResponse, error)
}

func analyze(ctx context.Context, a analyzer, op digest.Op, url string) (any, error) {
	if op == digest.OpKeywords {
		return a.Keywords(ctx, url)
	}
	return a.Summarize(ctx, url)
}
