package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
)

var careerMapCmd = &cobra.Command{
	Use:   "career-map",
	Short: "Print the graph of possible career moves",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()
		engine := loadEngine(config, logger)

		dot, _ := cmd.Flags().GetBool("dot")

		careerMap := engine.CareerMap()
		write := writeCareerMap
		if dot {
			write = (*catalog.CareerMap).WriteDOT
		}

		if err := write(careerMap, cmd.OutOrStdout()); err != nil {
			logger.Fatal("writing career map", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(careerMapCmd)

	careerMapCmd.Flags().Bool("dot", false, "render the map in graphviz DOT format")
}

// writeCareerMap lists, per position, the positions reachable in one move.
func writeCareerMap(careerMap *catalog.CareerMap, w io.Writer) error {
	for _, position := range careerMap.Positions() {
		next := careerMap.Next(position)
		if len(next) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s -> %s\n", position, strings.Join(next, ", ")); err != nil {
			return err
		}
	}
	return nil
}
