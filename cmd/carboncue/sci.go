package main

import (
	"fmt"

	"github.com/spf13/cobra"

	carboncue "github.com/rshade/carboncue-go"
)

func newSCICmd(_ *rootOptions) *cobra.Command {
	var (
		operational    float64
		embodied       float64
		functionalUnit int
		unitType       string
		regionCode     string
	)

	cmd := &cobra.Command{
		Use:     "sci",
		Short:   "Compute a Software Carbon Intensity score",
		Example: `  carboncue sci --operational 100 --embodied 50 --functional-unit 1000 --unit-type requests --region us-west-2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			score, err := carboncue.CalculateSCI(operational, embodied, functionalUnit, unitType, regionCode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SCI score:             %g gCO2eq per %s\n", score.Score(), score.FunctionalUnitType())
			fmt.Fprintf(out, "Operational emissions: %g gCO2eq\n", score.OperationalEmissions())
			fmt.Fprintf(out, "Embodied emissions:    %g gCO2eq\n", score.EmbodiedEmissions())
			fmt.Fprintf(out, "Functional unit:       %d %s\n", score.FunctionalUnit(), score.FunctionalUnitType())
			if score.Region() != "" {
				fmt.Fprintf(out, "Region:                %s\n", score.Region())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&operational, "operational", 0, "operational emissions in gCO2eq")
	cmd.Flags().Float64Var(&embodied, "embodied", 0, "embodied emissions in gCO2eq")
	cmd.Flags().IntVar(&functionalUnit, "functional-unit", 0, "functional unit count (required, > 0)")
	cmd.Flags().StringVar(&unitType, "unit-type", "requests", "functional unit label")
	cmd.Flags().StringVar(&regionCode, "region", "", "region label carried through to the result")
	_ = cmd.MarkFlagRequired("functional-unit")

	return cmd
}
