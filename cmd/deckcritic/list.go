package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/slides"
)

func newProfilesCmd(g *globalFlags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List available investor profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := g.setup()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("profiles-dir") {
				dir = cfg.ProfilesDir
			}
			return runProfiles(cmd.OutOrStdout(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "profiles-dir", "", "Directory of profile YAML files (default: built-in profiles)")
	return cmd
}

func runProfiles(w io.Writer, dir string) error {
	names, err := profile.List(dir)
	if err != nil {
		return exitError(3, "failed to list profiles: %v", err)
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No profiles found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFUND\tSTAGE")
	for _, name := range names {
		p, err := profile.Load(name, dir)
		if err != nil {
			fmt.Fprintf(tw, "%s\t(invalid: %v)\t\n", name, firstLine(err.Error()))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, p.FundName, strings.Join(p.StageFocus, ", "))
	}
	return tw.Flush()
}

func newTemplatesCmd() *cobra.Command {
	var arc bool
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the slide templates in canonical order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplates(cmd.OutOrStdout(), arc)
		},
	}
	cmd.Flags().BoolVar(&arc, "arc", false, "Also print the narrative arc")
	return cmd
}

func runTemplates(w io.Writer, arc bool) error {
	for i, t := range slides.Default().Templates() {
		fmt.Fprintf(w, "%2d. %s: %s\n", i+1, t.Type, t.Purpose)
		fmt.Fprintf(w, "    required: %s\n", strings.Join(t.RequiredElements, ", "))
		if len(t.MetricsNeeded) > 0 {
			fmt.Fprintf(w, "    metrics: %s\n", strings.Join(t.MetricsNeeded, ", "))
		}
		fmt.Fprintf(w, "    limits: %d bullets, %d words\n", t.MaxBullets, t.WordLimit)
	}
	if arc {
		fmt.Fprintf(w, "\n%s\n", slides.NarrativeArc())
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
