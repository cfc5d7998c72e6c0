package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/coach"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
	"github.com/26sneakysnake/Career-Compass/internal/report"
	"github.com/26sneakysnake/Career-Compass/internal/secrets"
)

var coachCmd = &cobra.Command{
	Use:   "coach <employee-id>",
	Short: "Ask the AI career coach about one of the employee's career paths",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCoach(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)

	coachCmd.Flags().StringP("target", "t", "", "target position (chosen from the ranked paths when empty)")
	coachCmd.Flags().StringP("question", "q", string(coach.QuestionPrepare), "question: prepare, chances or timeline")
	coachCmd.Flags().StringP("format", "f", "", "answer format: text or json")
}

func runCoach(cmd *cobra.Command, employeeID string) {
	ctx := context.Background()
	logger, config := setup()

	questionName, _ := cmd.Flags().GetString("question")
	question, err := coach.ParseQuestion(questionName)
	if err != nil {
		logger.Fatal("parsing question", zap.Error(err), zap.Any("supported", coach.Questions()))
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = config.Output.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	careerCoach, err := newCoach(ctx, config.Coach, logger)
	if err != nil {
		logger.Fatal("building career coach", zap.Error(err))
	}

	engine := loadEngine(config, logger)

	rec, err := engine.Recommend(employeeID)
	if err != nil {
		logger.Fatal("getting recommendations", zap.Error(err))
	}

	if len(rec.Paths) == 0 {
		logger.Info("exiting", zap.String("reason", rec.Message))
		return
	}

	target, _ := cmd.Flags().GetString("target")
	if strings.TrimSpace(target) == "" {
		target, err = selectTarget(rec)
		if err != nil {
			logger.Fatal("choosing a target position", zap.Error(err))
		}
	}

	answer, err := careerCoach.Ask(ctx, rec, target, question)
	if err != nil {
		logger.Fatal("asking the career coach", zap.Error(err))
	}

	if err := writeAnswer(cmd.OutOrStdout(), format, answer); err != nil {
		logger.Fatal("writing answer", zap.Error(err))
	}
}

// newCoach wires the Gemini generator. The coach must be enabled explicitly.
func newCoach(ctx context.Context, cfg *CoachConfig, logger *zap.Logger) (*coach.Coach, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("career coach is disabled (set coach.enabled or %s_COACH_ENABLED)", envPrefix)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set coach.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := coach.NewGeminiGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	coachLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return coach.New(generator, cfg.MaxLogLength, coachLogger), nil
}

func selectTarget(rec *recommend.Recommendation) (string, error) {
	items := make([]string, 0, len(rec.Paths))
	for _, path := range rec.Paths {
		items = append(items, fmt.Sprintf("%s (%.1f%%)", path.TargetPosition, path.CompatibilityScore))
	}

	targetPrompt := promptui.Select{
		Label: "Choose a target position and press ENTER",
		Items: items,
	}

	idx, _, err := targetPrompt.Run()
	if err != nil {
		return "", err
	}

	return rec.Paths[idx].TargetPosition, nil
}

func writeAnswer(w io.Writer, format report.Format, answer *coach.Answer) error {
	if format == report.FormatJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (%s)\n\n%s\n", answer.Target, answer.Question, answer.Text); err != nil {
		return err
	}
	if len(answer.FocusSkills) > 0 {
		if _, err := fmt.Fprintf(w, "\nFocus skills: %s\n", strings.Join(answer.FocusSkills, ", ")); err != nil {
			return err
		}
	}
	if answer.EstimatedMonths > 0 {
		if _, err := fmt.Fprintf(w, "Estimated time: %.0f months\n", answer.EstimatedMonths); err != nil {
			return err
		}
	}

	return nil
}
