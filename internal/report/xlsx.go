package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

const (
	SheetProfile   = "Profile"
	SheetPaths     = "Paths"
	SheetTrainings = "Trainings"
	SheetPlan      = "Plan"
)

var (
	pathsHeader = []any{
		"Rank", "Target position", "Compatibility score", "Skill match",
		"Meets experience", "Meets performance", "Min years", "Min performance",
		"Required skills", "Missing skills", "Experience gap (years)", "Ready",
	}
	trainingsHeader = []any{
		"Target position", "Training ID", "Training name", "Duration (days)", "Level", "For skill",
	}
	planHeader = []any{"Target position", "Step", "Action", "Detail"}
)

func renderXLSX(w io.Writer, rec *recommend.Recommendation) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetProfile); err != nil {
		return fmt.Errorf("rename profile sheet: %w", err)
	}

	employee := rec.Employee
	profile := [][]any{
		{"Employee ID", employee.ID},
		{"Current position", employee.CurrentPosition},
		{"Years in position", employee.YearsInPosition},
		{"Education level", employee.EducationLevel},
		{"Performance score", employee.PerformanceScore},
		{"Skills", strings.Join(employee.Skills, "; ")},
		{"Interests", strings.Join(employee.Interests, "; ")},
	}
	if rec.Message != "" {
		profile = append(profile, []any{"Message", rec.Message})
	}
	if err := writeRows(f, SheetProfile, profile); err != nil {
		return err
	}

	paths := [][]any{pathsHeader}
	trainings := [][]any{trainingsHeader}
	plan := [][]any{planHeader}

	for idx, path := range rec.Paths {
		paths = append(paths, []any{
			idx + 1,
			path.TargetPosition,
			path.CompatibilityScore,
			path.SkillMatch,
			path.MeetsExperience,
			path.MeetsPerformance,
			path.Requirements.MinYearsExperience,
			path.Requirements.MinPerformance,
			strings.Join(path.Requirements.RequiredSkills, "; "),
			strings.Join(path.MissingSkills, "; "),
			path.Plan.ExperienceGapYears,
			path.Plan.Ready,
		})

		for _, training := range path.Trainings {
			trainings = append(trainings, []any{
				path.TargetPosition,
				training.TrainingID,
				training.Name,
				training.DurationDays,
				training.Level,
				training.ForSkill,
			})
		}

		for step, planStep := range path.Plan.Steps {
			plan = append(plan, []any{path.TargetPosition, step + 1, planStep.Action, planStep.Detail})
		}
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{name: SheetPaths, rows: paths},
		{name: SheetTrainings, rows: trainings},
		{name: SheetPlan, rows: plan},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
		if err := styleHeader(f, sheet.name, len(sheet.rows[0])); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}

		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, idx+1, err)
		}
	}

	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	endCell, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", endCell, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	lastColumn, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}

	return f.SetColWidth(sheet, "A", lastColumn, 20)
}
