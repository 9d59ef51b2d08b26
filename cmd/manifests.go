package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/models"

	"github.com/spf13/cobra"
)

type manifestsOptions struct {
	Lot               string
	WithoutNiceToHave bool
}

func newManifestsCommand() *cobra.Command {
	opts := &manifestsOptions{}

	cmd := &cobra.Command{
		Use:   "manifests",
		Short: "Validate embedded content manifests and print the section order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := content.Load()
			if err != nil {
				return err
			}
			return printManifests(cmd.OutOrStdout(), registry, *opts)
		},
	}
	cmd.Flags().StringVar(&opts.Lot, "lot", "digital-specialists", "lot of the example brief")
	cmd.Flags().BoolVar(&opts.WithoutNiceToHave, "without-nice-to-have", false, "resolve for a brief with no nice-to-have requirements")
	return cmd
}

// printManifests выводит порядок секций каждого семейства для примерного брифа.
func printManifests(w io.Writer, registry *content.Registry, opts manifestsOptions) error {
	brief := &models.Brief{
		LotSlug:                opts.Lot,
		EssentialRequirements:  []string{"essential"},
		NiceToHaveRequirements: []string{"nice-to-have"},
	}
	if opts.WithoutNiceToHave {
		brief.NiceToHaveRequirements = nil
	}

	families := registry.Families()
	sort.Strings(families)
	for _, family := range families {
		manifest, _ := registry.Manifest(family)
		if err := manifest.Validate(); err != nil {
			return fmt.Errorf("%s: %w", family, err)
		}
		if _, err := fmt.Fprintf(w, "%s (lot %s)\n", family, opts.Lot); err != nil {
			return err
		}
		for i, section := range manifest.Resolve(brief).Sections {
			if _, err := fmt.Fprintf(w, "  %d. %s - %s\n", i+1, section.ID, section.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
