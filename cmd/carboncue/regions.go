package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carboncue-go/region"
)

func newRegionsCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List supported regions for a cloud provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			regions, err := region.SupportedRegions(provider)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range regions {
				zone, err := region.ZoneID(r, provider)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-24s %s\n", r, zone)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "aws", "cloud provider (aws, azure, gcp, digitalocean)")

	return cmd
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List cloud providers known to the region mapper",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range region.SupportedProviders() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
