package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/consultmatch/internal/adapters/cli"
	"github.com/okian/consultmatch/internal/adapters/dataset"
	"github.com/okian/consultmatch/internal/adapters/repository"
	"github.com/okian/consultmatch/internal/config"
)

type assignOptions struct {
	dataFile  string
	projectID string
	shortlist int
	yes       bool
	write     bool
	out       string

	confirmer cli.Confirmer
}

func newAssignCmd(opts *rootOptions) *cobra.Command {
	a := &assignOptions{}

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assemble a team for one project in a dataset file",
		Long: `Loads consultants and projects from a YAML dataset, proposes a team for
--project and, once confirmed, commits it. With --write the updated
consultant availability is saved back to the dataset (or to --out).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.confirmer == nil {
				a.confirmer = cli.PromptConfirmer{}
				if a.yes {
					a.confirmer = cli.AutoConfirm(true)
				}
			}
			return assign(cmd.Context(), cmd.OutOrStdout(), opts.cfg, a)
		},
	}

	cmd.Flags().StringVar(&a.dataFile, "data", "", "YAML dataset file (required)")
	cmd.Flags().StringVar(&a.projectID, "project", "", "project id to staff (required)")
	cmd.Flags().IntVar(&a.shortlist, "shortlist", 0, "also print the top N candidates")
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "commit without asking")
	cmd.Flags().BoolVar(&a.write, "write", false, "save the committed state back to the dataset")
	cmd.Flags().StringVar(&a.out, "out", "", "write to this file instead of --data")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func assign(ctx context.Context, w io.Writer, cfg *config.Config, a *assignOptions) error {
	f, err := dataset.Load(a.dataFile)
	if err != nil {
		return err
	}
	store := repository.NewMemoryStore()
	if err := dataset.Import(ctx, store, f); err != nil {
		return err
	}

	svc, err := newService(cfg, store)
	if err != nil {
		return err
	}

	if a.shortlist > 0 {
		entries, err := svc.Shortlist(ctx, a.projectID, a.shortlist)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, cli.RenderShortlist(a.projectID, entries))
	}

	proposal, err := svc.Recommend(ctx, a.projectID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.RenderAssignment(proposal))

	if len(proposal.Consultants) == 0 {
		fmt.Fprintln(w, "Nothing to commit.")
		return nil
	}

	ok, err := a.confirmer.Confirm(fmt.Sprintf("Commit %d consultants to %s?", len(proposal.Consultants), a.projectID))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Not committed.")
		return nil
	}

	committed, err := svc.Staff(ctx, a.projectID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.RenderAssignment(committed))

	if !a.write {
		return nil
	}
	updated, err := dataset.Export(ctx, store)
	if err != nil {
		return err
	}
	path := a.dataFile
	if a.out != "" {
		path = a.out
	}
	if err := dataset.Save(path, updated); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s\n", path)
	return nil
}
