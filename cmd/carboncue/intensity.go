package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	carboncue "github.com/rshade/carboncue-go"
)

func newIntensityCmd(opts *rootOptions) *cobra.Command {
	var (
		regionCode string
		provider   string
	)

	cmd := &cobra.Command{
		Use:   "intensity",
		Short: "Fetch current grid carbon intensity for a cloud region",
		Example: `  carboncue intensity --region us-west-2
  carboncue intensity --region eastus --provider azure`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.newLogger()

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			prov, err := carboncue.ParseProvider(provider)
			if err != nil {
				return err
			}

			client, err := carboncue.NewClient(cfg, logger)
			if err != nil {
				return err
			}

			return client.Session(cmd.Context(), func(ctx context.Context) error {
				intensity, err := client.GetCurrentIntensity(ctx, regionCode, prov)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Region:           %s (%s)\n", intensity.Region(), prov)
				fmt.Fprintf(out, "Carbon intensity: %.1f gCO2eq/kWh\n", intensity.Intensity())
				if fossil, ok := intensity.FossilFuelPercentage(); ok {
					fmt.Fprintf(out, "Fossil fuel:      %.1f%%\n", fossil)
				}
				if renewable, ok := intensity.RenewablePercentage(); ok {
					fmt.Fprintf(out, "Renewable:        %.1f%%\n", renewable)
				}
				fmt.Fprintf(out, "Source:           %s\n", intensity.Source())
				fmt.Fprintf(out, "Fetched at:       %s\n", intensity.Timestamp().Format("2006-01-02T15:04:05Z07:00"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&regionCode, "region", "", "cloud region identifier (required)")
	cmd.Flags().StringVar(&provider, "provider", "aws", "cloud provider (aws, azure, gcp, digitalocean)")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
