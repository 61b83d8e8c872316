package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"huddle/internal/config"
	"huddle/internal/database"
	"huddle/internal/dataset"
	"huddle/internal/huddle"
	"huddle/internal/models"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [YYYY-MM-DD]",
	Short: "Print the huddle report for a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var date models.Date
		if len(args) == 1 {
			parsed, err := models.ParseDate(args[0])
			if err != nil {
				return err
			}
			date = parsed
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		source, closeSource, err := newSource(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		resp, err := huddle.NewService(source).Build(cmd.Context(), date)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var generateOpts struct {
	out    string
	start  string
	seed   int64
	diners int
	days   int
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic reservation dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := models.DateOf(time.Now())
		if generateOpts.start != "" {
			parsed, err := models.ParseDate(generateOpts.start)
			if err != nil {
				return err
			}
			start = parsed
		}

		opts := dataset.DefaultGenerateOptions(start)
		opts.Seed = generateOpts.seed
		opts.Diners = generateOpts.diners
		opts.Days = generateOpts.days

		diners := dataset.Generate(opts)
		if err := dataset.WriteFile(generateOpts.out, diners); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}

		log.Printf("Wrote %d diners to %s", len(diners), generateOpts.out)
		return nil
	},
}

var importFrom string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON dataset into the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		diners, err := dataset.NewFileSource(importFrom).Load(cmd.Context())
		if err != nil {
			return err
		}

		store, err := database.Open(cfg.Dataset.Database.Driver, cfg.Dataset.Database.DSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Import(diners); err != nil {
			return err
		}

		log.Printf("Imported %d diners into %s", len(diners), cfg.Dataset.Database.DSN)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOpts.out, "out", "fine-dining-dataset.json", "Output file")
	generateCmd.Flags().StringVar(&generateOpts.start, "date", "", "First reservation date, YYYY-MM-DD (default today)")
	generateCmd.Flags().Int64Var(&generateOpts.seed, "seed", 42, "Random seed")
	generateCmd.Flags().IntVar(&generateOpts.diners, "diners", 50, "Number of diners")
	generateCmd.Flags().IntVar(&generateOpts.days, "days", 7, "Number of days reservations are spread over")

	importCmd.Flags().StringVar(&importFrom, "from", "fine-dining-dataset.json", "JSON dataset to import")
}

// newSource builds the dataset source selected in cfg. The returned func releases it.
func newSource(ctx context.Context, cfg *config.Config) (huddle.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Dataset.Source {
	case config.SourceFile:
		return dataset.NewFileSource(cfg.Dataset.Path), noop, nil
	case config.SourceS3:
		source, err := dataset.NewS3Source(ctx, cfg.Dataset.S3.Region, cfg.Dataset.S3.Bucket, cfg.Dataset.S3.Key)
		if err != nil {
			return nil, nil, err
		}
		return source, noop, nil
	case config.SourceDatabase:
		store, err := database.Open(cfg.Dataset.Database.Driver, cfg.Dataset.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}
