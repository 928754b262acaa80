package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/world/population"
)

var liveCmd = &cobra.Command{
	Use:   "live <region>",
	Short: "Read a region's live population counter",
	Long: `Live renders a region population page and prints its live population
counter. An absent counter prints None.

Regions: ` + strings.Join(regionNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		region, ok := population.RegionByName(args[0])
		if !ok {
			return fmt.Errorf("unknown region %q (one of %s)", args[0], strings.Join(regionNames(), ", "))
		}

		v, err := population.NewRegionPopulation(newLoader(), region).Live(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", region.Name, v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(liveCmd)
}

func regionNames() []string {
	var names []string
	for _, r := range population.Regions() {
		names = append(names, r.Name)
	}
	return names
}
