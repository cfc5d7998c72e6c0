package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

func renderText(w io.Writer, rec *recommend.Recommendation) error {
	out := bufio.NewWriter(w)
	employee := rec.Employee

	fmt.Fprintf(out, "Recommendations for %s - %s\n", employee.ID, employee.CurrentPosition)
	fmt.Fprintf(out, "Current skills: %s\n", joinOrNone(employee.Skills))
	fmt.Fprintf(out, "Performance: %s\n", formatNumber(employee.PerformanceScore))
	fmt.Fprintf(out, "Years in position: %s\n", formatNumber(employee.YearsInPosition))

	if len(rec.Paths) == 0 {
		message := rec.Message
		if message == "" {
			message = recommend.NoPathsMessage
		}
		fmt.Fprintf(out, "\n%s\n", message)
		return out.Flush()
	}

	fmt.Fprintln(out, "\nRecommended career paths:")

	for idx, path := range rec.Paths {
		fmt.Fprintf(out, "\n%d. %s - compatibility %.1f%%\n", idx+1, path.TargetPosition, path.CompatibilityScore)
		fmt.Fprintf(out, "   Skill match: %.1f%%\n", path.SkillMatch)
		fmt.Fprintf(out, "   Experience met: %s (%s years minimum)\n",
			yesNo(path.MeetsExperience), formatNumber(path.Requirements.MinYearsExperience))
		fmt.Fprintf(out, "   Performance met: %s (%s minimum)\n",
			yesNo(path.MeetsPerformance), formatNumber(path.Requirements.MinPerformance))
		fmt.Fprintf(out, "   Score: skills %.1f + experience %.1f + performance %.1f\n",
			path.Breakdown.Skills, path.Breakdown.Experience, path.Breakdown.Performance)

		if len(path.MissingSkills) > 0 {
			fmt.Fprintf(out, "   Missing skills: %s\n", strings.Join(path.MissingSkills, ", "))
		}

		if len(path.Trainings) > 0 {
			fmt.Fprintln(out, "   Recommended trainings:")
			for _, training := range path.Trainings {
				fmt.Fprintf(out, "      - %s (%s days, %s) - for %s\n",
					training.Name, formatNumber(training.DurationDays), training.Level, training.ForSkill)
			}
		}

		writePlan(out, path.Plan)
	}

	return out.Flush()
}

func writePlan(out io.Writer, plan recommend.DevelopmentPlan) {
	fmt.Fprintln(out, "   Development plan:")
	for idx, step := range plan.Steps {
		fmt.Fprintf(out, "      %d. %s\n", idx+1, step.Detail)
	}
	if plan.Note != "" {
		fmt.Fprintf(out, "   Note: %s\n", plan.Note)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
