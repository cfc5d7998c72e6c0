package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List employees as \"ID - position\"",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()
		engine := loadEngine(config, logger)

		byPosition, _ := cmd.Flags().GetBool("by-position")
		if byPosition {
			writePositionCounts(cmd.OutOrStdout(), engine.PositionCounts())
			return
		}

		for _, label := range employeeLabels(engine.Employees()) {
			fmt.Fprintln(cmd.OutOrStdout(), label)
		}
	},
}

func init() {
	rootCmd.AddCommand(employeesCmd)

	employeesCmd.Flags().Bool("by-position", false, "print the headcount of every current position instead")
}

func writePositionCounts(w io.Writer, counts []recommend.PositionCount) {
	total := 0
	for _, count := range counts {
		fmt.Fprintf(w, "%s: %d\n", count.Position, count.Employees)
		total += count.Employees
	}
	fmt.Fprintf(w, "Total: %d\n", total)
}
