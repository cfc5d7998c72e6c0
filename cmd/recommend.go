package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
	"github.com/26sneakysnake/Career-Compass/internal/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [employee-id]",
	Short: "Rank the career paths open to an employee",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRecommend(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("format", "f", "", "report format: text, json, yaml or xlsx")
	recommendCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	recommendCmd.Flags().BoolP("interactive", "i", false, "choose the employee from a list")

	viper.BindPFlag("output.format", recommendCmd.Flags().Lookup("format"))
}

func runRecommend(cmd *cobra.Command, args []string) {
	logger, config := setup()

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err), zap.Any("supported", report.Formats()))
	}

	output, _ := cmd.Flags().GetString("output")
	if format.Binary() && output == "" {
		logger.Fatal("binary report needs a file", zap.String("format", string(format)), zap.String("hint", "pass --output"))
	}

	engine := loadEngine(config, logger)

	employeeID, err := resolveEmployeeID(cmd, args, engine.Employees())
	if err != nil {
		logger.Fatal("choosing an employee", zap.Error(err))
	}

	rec, err := engine.Recommend(employeeID)
	if err != nil {
		if errors.Is(err, recommend.ErrNotFound) {
			logger.Fatal("getting recommendations", zap.Error(err), zap.String("hint", "run 'career-compass employees' to list identifiers"))
		}
		logger.Fatal("getting recommendations", zap.Error(err))
	}

	logger.Info("career paths ranked",
		zap.String("employee_id", rec.Employee.ID),
		zap.Int("paths", len(rec.Paths)),
	)

	if err := writeReport(cmd.OutOrStdout(), output, format, rec); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	if output != "" {
		logger.Info("report written", zap.String("filename", output), zap.String("format", string(format)))
	}
}

func resolveEmployeeID(cmd *cobra.Command, args []string, employees []catalog.Employee) (string, error) {
	interactive, _ := cmd.Flags().GetBool("interactive")

	if len(args) == 1 && !interactive {
		return args[0], nil
	}

	if len(args) == 0 && !interactive {
		return "", errors.New("employee id is required (or pass --interactive)")
	}

	return selectEmployee(employees)
}

// selectEmployee asks for an employee in "ID - position" form.
func selectEmployee(employees []catalog.Employee) (string, error) {
	if len(employees) == 0 {
		return "", errors.New("there are no employees to choose from")
	}

	employeePrompt := promptui.Select{
		Label: "Choose an employee and press ENTER",
		Items: employeeLabels(employees),
		Size:  10,
	}

	idx, _, err := employeePrompt.Run()
	if err != nil {
		return "", err
	}

	return employees[idx].ID, nil
}

func employeeLabels(employees []catalog.Employee) []string {
	labels := make([]string, 0, len(employees))
	for _, employee := range employees {
		labels = append(labels, employeeLabel(employee))
	}
	return labels
}

func employeeLabel(employee catalog.Employee) string {
	return fmt.Sprintf("%s - %s", employee.ID, employee.CurrentPosition)
}

func writeReport(stdout io.Writer, output string, format report.Format, rec *recommend.Recommendation) error {
	if output == "" {
		return report.Render(stdout, format, rec)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}

	if err := report.Render(file, format, rec); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
