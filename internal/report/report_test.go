package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
)

func sampleRecommendation() *recommend.Recommendation {
	return &recommend.Recommendation{
		Employee: catalog.Employee{
			ID:               "EMP001",
			CurrentPosition:  "Data Analyst",
			YearsInPosition:  5,
			EducationLevel:   "Master",
			PerformanceScore: 3.5,
			Skills:           catalog.Skills{"Python", "SQL"},
			Interests:        catalog.Skills{"Machine Learning"},
		},
		Paths: []recommend.PathRecommendation{
			{
				TargetPosition:     "Data Scientist",
				CompatibilityScore: 73.33333333333333,
				SkillMatch:         66.66666666666666,
				MeetsExperience:    true,
				MeetsPerformance:   false,
				MissingSkills:      []string{"ML"},
				Trainings: []recommend.TrainingRecommendation{
					{TrainingID: "T001", Name: "Machine Learning Basics", DurationDays: 5, Level: "Intermediate", ForSkill: "ML"},
				},
				Requirements: recommend.Requirements{
					MinYearsExperience: 3,
					MinPerformance:     4,
					RequiredSkills:     []string{"Python", "SQL", "ML"},
				},
				Breakdown: recommend.ScoreBreakdown{Skills: 33.33333333333333, Experience: 30, Performance: 10},
				Plan: recommend.DevelopmentPlan{
					Steps: []recommend.PlanStep{
						{Action: recommend.ActionAcquireSkills, Detail: "acquire ML through the recommended trainings"},
						{Action: recommend.ActionImprovePerformance, Detail: "raise the performance score from 3.5 to at least 4"},
						{Action: recommend.ActionApplyInternally, Detail: "prepare an internal application for Data Scientist"},
					},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  Format
		err   bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: " JSON ", want: FormatJSON},
		{input: "yaml", want: FormatYAML},
		{input: "xlsx", want: FormatXLSX},
		{input: "pdf", err: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tc.input)
			if tc.err {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}

	if !FormatXLSX.Binary() || FormatJSON.Binary() {
		t.Fatalf("only xlsx should be binary")
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatText, sampleRecommendation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	expected := []string{
		"Recommendations for EMP001 - Data Analyst",
		"Current skills: Python, SQL",
		"Performance: 3.5",
		"1. Data Scientist - compatibility 73.3%",
		"Skill match: 66.7%",
		"Experience met: yes (3 years minimum)",
		"Performance met: no (4 minimum)",
		"Missing skills: ML",
		"- Machine Learning Basics (5 days, Intermediate) - for ML",
		"Development plan:",
		"1. acquire ML through the recommended trainings",
		"2. raise the performance score from 3.5 to at least 4",
		"3. prepare an internal application for Data Scientist",
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Fatalf("expected output to contain %q, got:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Note:") {
		t.Fatalf("did not expect a note for an open plan, got:\n%s", out)
	}
}

func TestRenderTextReadyPlan(t *testing.T) {
	rec := sampleRecommendation()
	path := &rec.Paths[0]
	path.MissingSkills = []string{}
	path.Trainings = []recommend.TrainingRecommendation{}
	path.Plan = recommend.DevelopmentPlan{
		Steps: []recommend.PlanStep{
			{Action: recommend.ActionApplyInternally, Detail: "prepare an internal application for Data Scientist"},
		},
		Ready: true,
		Note:  recommend.ReadyNote,
	}

	var buf bytes.Buffer
	if err := Render(&buf, FormatText, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, line := range []string{
		"Development plan:",
		"1. prepare an internal application for Data Scientist",
		"Note: " + recommend.ReadyNote,
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected output to contain %q, got:\n%s", line, out)
		}
	}
	if strings.Contains(out, "Missing skills") {
		t.Fatalf("did not expect missing skills, got:\n%s", out)
	}
}

func TestRenderTextWithoutPaths(t *testing.T) {
	rec := sampleRecommendation()
	rec.Paths = []recommend.PathRecommendation{}
	rec.Message = recommend.NoPathsMessage

	var buf bytes.Buffer
	if err := Render(&buf, FormatText, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), recommend.NoPathsMessage) {
		t.Fatalf("expected no-path message, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Recommended career paths") {
		t.Fatalf("did not expect a path section")
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatJSON, sampleRecommendation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	paths, ok := decoded["career_paths"].([]any)
	if !ok || len(paths) != 1 {
		t.Fatalf("unexpected career_paths: %v", decoded["career_paths"])
	}

	path := paths[0].(map[string]any)
	for _, key := range []string{"target_position", "compatibility_score", "skill_match", "meets_experience", "meets_performance", "missing_skills", "recommended_trainings", "requirements", "breakdown", "development_plan"} {
		if _, ok := path[key]; !ok {
			t.Fatalf("expected key %q in %v", key, path)
		}
	}

	plan := path["development_plan"].(map[string]any)
	steps, ok := plan["steps"].([]any)
	if !ok || len(steps) != 3 {
		t.Fatalf("unexpected plan steps: %v", plan["steps"])
	}
	if steps[0].(map[string]any)["action"] != recommend.ActionAcquireSkills {
		t.Fatalf("unexpected first step: %v", steps[0])
	}
	if plan["ready"] != false || plan["experience_gap_years"] != float64(0) {
		t.Fatalf("unexpected plan: %v", plan)
	}

	if _, ok := decoded["message"]; ok {
		t.Fatalf("did not expect an empty message to be emitted")
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatYAML, sampleRecommendation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Employee struct {
			ID string `yaml:"employee_id"`
		} `yaml:"employee"`
		Paths []struct {
			Target  string   `yaml:"target_position"`
			Missing []string `yaml:"missing_skills"`
			Plan    struct {
				Steps []struct {
					Action string `yaml:"action"`
				} `yaml:"steps"`
			} `yaml:"development_plan"`
		} `yaml:"career_paths"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}

	if decoded.Employee.ID != "EMP001" {
		t.Fatalf("unexpected employee id: %q", decoded.Employee.ID)
	}
	if len(decoded.Paths) != 1 || decoded.Paths[0].Target != "Data Scientist" || decoded.Paths[0].Missing[0] != "ML" {
		t.Fatalf("unexpected paths: %+v", decoded.Paths)
	}
	if steps := decoded.Paths[0].Plan.Steps; len(steps) != 3 || steps[2].Action != recommend.ActionApplyInternally {
		t.Fatalf("unexpected plan steps: %+v", steps)
	}
}

func TestRenderXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatXLSX, sampleRecommendation()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("invalid workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "Profile,Paths,Trainings,Plan" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	profile, err := f.GetRows(SheetProfile)
	if err != nil {
		t.Fatalf("reading profile: %v", err)
	}
	if profile[0][1] != "EMP001" {
		t.Fatalf("unexpected profile: %v", profile)
	}

	paths, err := f.GetRows(SheetPaths)
	if err != nil {
		t.Fatalf("reading paths: %v", err)
	}
	if len(paths) != 2 || paths[1][1] != "Data Scientist" || paths[1][9] != "ML" {
		t.Fatalf("unexpected paths: %v", paths)
	}

	trainings, err := f.GetRows(SheetTrainings)
	if err != nil {
		t.Fatalf("reading trainings: %v", err)
	}
	if len(trainings) != 2 || trainings[1][1] != "T001" || trainings[1][5] != "ML" {
		t.Fatalf("unexpected trainings: %v", trainings)
	}

	plan, err := f.GetRows(SheetPlan)
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	if len(plan) != 4 || plan[1][0] != "Data Scientist" || plan[1][2] != recommend.ActionAcquireSkills || plan[3][1] != "3" {
		t.Fatalf("unexpected plan: %v", plan)
	}
}

func TestRenderRejectsInput(t *testing.T) {
	var buf bytes.Buffer

	if err := Render(&buf, FormatJSON, nil); err == nil {
		t.Fatalf("expected error for nil recommendation")
	}
	if err := Render(&buf, Format("pdf"), sampleRecommendation()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
