package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/consultmatch/internal/adapters/dataset"
	"github.com/okian/consultmatch/internal/seed"
)

func newSeedCmd(_ *rootOptions) *cobra.Command {
	cfg := seed.DefaultConfig()
	var (
		out   string
		push  bool
		start string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic dataset",
		Long: `Generates consultants and projects from a seed. The dataset is written to
--out as YAML (stdout when --out is "-") and, with --push, posted to a
running server at --url.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start != "" {
				t, err := time.Parse(time.DateOnly, start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				cfg.Start = t
			}
			return runSeed(cmd.Context(), cmd.OutOrStdout(), cfg, out, push)
		},
	}

	cmd.Flags().IntVar(&cfg.Consultants, "consultants", cfg.Consultants, "number of consultants")
	cmd.Flags().IntVar(&cfg.Projects, "projects", cfg.Projects, "number of projects")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	cmd.Flags().StringVar(&start, "start", "", "earliest project start, YYYY-MM-DD (default 2025-01-01)")
	cmd.Flags().Float64Var(&cfg.ConflictRate, "conflict-rate", cfg.ConflictRate, "chance that two consultants conflict")
	cmd.Flags().Float64Var(&cfg.AssignedRate, "assigned-rate", cfg.AssignedRate, "share of consultants already assigned")
	cmd.Flags().Float64Var(&cfg.UnavailableRate, "unavailable-rate", cfg.UnavailableRate, "share of unavailable consultants")
	cmd.Flags().StringVarP(&out, "out", "o", "-", `output file, "-" for stdout, "" to skip`)
	cmd.Flags().BoolVar(&push, "push", false, "post the dataset to --url")
	cmd.Flags().StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "server base URL for --push")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent requests for --push")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&cfg.Staff, "staff", false, "with --push, request a team for every project")
	return cmd
}

func runSeed(ctx context.Context, w io.Writer, cfg seed.Config, out string, push bool) error {
	f := seed.Generate(cfg)

	switch out {
	case "":
	case "-":
		if err := dataset.Write(w, f); err != nil {
			return err
		}
	default:
		if err := dataset.Save(out, f); err != nil {
			return err
		}
	}

	if !push {
		return nil
	}
	stats, err := seed.Push(ctx, cfg, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pushed %d consultants, %d projects; teams committed %d, rejected %d, failed %d in %s\n",
		stats.ConsultantsPushed, stats.ProjectsPushed, stats.TeamsCommitted, stats.TeamsRejected,
		stats.Failed, stats.Duration.Round(time.Millisecond))
	return nil
}
