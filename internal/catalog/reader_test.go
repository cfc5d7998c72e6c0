package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const employeesCSV = `employee_id,current_position,years_in_position,education_level,performance_score,skills,interests
EMP001,Data Analyst,5,Master,3.5,Python;SQL,Machine Learning;Cloud
EMP002,Junior Developer,1,Bachelor,4.2,,
`

const careerPathsCSV = `from_position,to_position,required_skills,min_years_experience,min_performance
Data Analyst,Data Scientist,Python;SQL;ML,3,4.0
Data Analyst,BI Manager,SQL;Leadership,4,3.5
`

const trainingsCSV = `training_id,training_name,duration_days,level,skills_provided
T001,Machine Learning Basics,5,Intermediate,ML;Statistics
T002,Leading Teams,3,Advanced,Leadership
`

func TestParseSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect Skills
	}{
		{name: "empty cell is empty set", input: "", expect: Skills{}},
		{name: "single", input: "Python", expect: Skills{"Python"}},
		{name: "keeps order", input: "SQL;Python;ML", expect: Skills{"SQL", "Python", "ML"}},
		{name: "trims items", input: " SQL ; Python ", expect: Skills{"SQL", "Python"}},
		{name: "drops empty items", input: "SQL;;Python;", expect: Skills{"SQL", "Python"}},
		{name: "drops repeated items", input: "SQL;Python;SQL", expect: Skills{"SQL", "Python"}},
		{name: "separators only", input: ";;", expect: Skills{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseSkills(tt.input)
			if got == nil {
				t.Fatalf("expected non-nil skills")
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestSkillsSetAndContains(t *testing.T) {
	skills := ParseSkills("Go;SQL")

	set := skills.Set()
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
	if _, ok := set["Go"]; !ok {
		t.Fatalf("expected Go in set")
	}
	if !skills.Contains("SQL") || skills.Contains("sql") {
		t.Fatalf("unexpected Contains result for %v", skills)
	}
	if skills.String() != "Go;SQL" {
		t.Fatalf("unexpected string form: %q", skills.String())
	}
}

func TestReadEmployees(t *testing.T) {
	employees, err := ReadEmployees(strings.NewReader(employeesCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}

	first := employees[0]
	if first.ID != "EMP001" || first.CurrentPosition != "Data Analyst" {
		t.Fatalf("unexpected employee: %+v", first)
	}
	if first.YearsInPosition != 5 || first.PerformanceScore != 3.5 {
		t.Fatalf("unexpected numbers: %+v", first)
	}
	if first.EducationLevel != "Master" {
		t.Fatalf("unexpected education level: %q", first.EducationLevel)
	}
	if !reflect.DeepEqual(first.Skills, Skills{"Python", "SQL"}) {
		t.Fatalf("unexpected skills: %v", first.Skills)
	}
	if !reflect.DeepEqual(first.Interests, Skills{"Machine Learning", "Cloud"}) {
		t.Fatalf("unexpected interests: %v", first.Interests)
	}

	second := employees[1]
	if second.Skills == nil || len(second.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", second.Skills)
	}
}

func TestReadEmployeesAcceptsBOMAndExtraColumns(t *testing.T) {
	input := "\ufeffemployee_id,current_position,years_in_position,education_level,performance_score,skills,interests,name\n" +
		"EMP001,Analyst,2,PhD,3,Go,,Jane\n"

	employees, err := ReadEmployees(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(employees) != 1 || employees[0].ID != "EMP001" {
		t.Fatalf("unexpected employees: %+v", employees)
	}
}

func TestReadCareerPathsAndTrainings(t *testing.T) {
	paths, err := ReadCareerPaths(strings.NewReader(careerPathsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if paths[0].ToPosition != "Data Scientist" || paths[0].MinYearsExperience != 3 || paths[0].MinPerformance != 4.0 {
		t.Fatalf("unexpected path: %+v", paths[0])
	}
	if !reflect.DeepEqual(paths[0].RequiredSkills, Skills{"Python", "SQL", "ML"}) {
		t.Fatalf("unexpected required skills: %v", paths[0].RequiredSkills)
	}

	trainings, err := ReadTrainings(strings.NewReader(trainingsCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trainings) != 2 {
		t.Fatalf("expected 2 trainings, got %d", len(trainings))
	}
	if trainings[0].Name != "Machine Learning Basics" || trainings[0].DurationDays != 5 || trainings[0].Level != "Intermediate" {
		t.Fatalf("unexpected training: %+v", trainings[0])
	}
}

func TestReadMalformedRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		read  func(string) error
		input string
		field string
		line  int
	}{
		{
			name:  "missing column",
			read:  readEmployees,
			input: "employee_id,current_position,years_in_position,education_level,skills,interests\nEMP001,Analyst,2,PhD,Go,\n",
			field: "performance_score",
		},
		{
			name:  "empty identifier",
			read:  readEmployees,
			input: "employee_id,current_position,years_in_position,education_level,performance_score,skills,interests\n,Analyst,2,PhD,3,Go,\n",
			field: "employee_id",
			line:  2,
		},
		{
			name:  "non numeric years",
			read:  readEmployees,
			input: "employee_id,current_position,years_in_position,education_level,performance_score,skills,interests\nEMP001,Analyst,many,PhD,3,Go,\n",
			field: "years_in_position",
			line:  2,
		},
		{
			name:  "empty number",
			read:  readCareerPaths,
			input: "from_position,to_position,required_skills,min_years_experience,min_performance\nA,B,Go,,3\n",
			field: "min_years_experience",
			line:  2,
		},
		{
			name:  "not a finite number",
			read:  readTrainings,
			input: "training_id,training_name,duration_days,level,skills_provided\nT1,Go,NaN,Basic,Go\n",
			field: "duration_days",
			line:  2,
		},
		{
			name:  "performance out of range",
			read:  readEmployees,
			input: "employee_id,current_position,years_in_position,education_level,performance_score,skills,interests\nEMP001,Analyst,2,PhD,7.5,Go,\n",
			field: "performance_score",
			line:  2,
		},
		{
			name:  "negative years",
			read:  readCareerPaths,
			input: "from_position,to_position,required_skills,min_years_experience,min_performance\nA,B,Go,-1,3\n",
			field: "min_years_experience",
			line:  2,
		},
		{
			name:  "duplicate employee",
			read:  readEmployees,
			input: employeesCSV + "EMP001,Analyst,2,PhD,3,Go,\n",
			field: "employee_id",
			line:  4,
		},
		{
			name:  "wrong field count",
			read:  readTrainings,
			input: "training_id,training_name,duration_days,level,skills_provided\nT1,Go,2\n",
			line:  2,
		},
		{
			name:  "empty input",
			read:  readTrainings,
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.read(tt.input)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected malformed record error, got %v", err)
			}

			var malformed *MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedRecordError, got %T", err)
			}
			if malformed.Field != tt.field {
				t.Fatalf("expected field %q, got %q (%v)", tt.field, malformed.Field, err)
			}
			if malformed.Line != tt.line {
				t.Fatalf("expected line %d, got %d (%v)", tt.line, malformed.Line, err)
			}
		})
	}
}

func TestMalformedRecordErrorMessage(t *testing.T) {
	err := &MalformedRecordError{Table: TableEmployees, Line: 3, Field: "skills", Reason: "bad"}
	expected := `employees: malformed record at line 3, field "skills": bad`
	if err.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, err.Error())
	}

	header := &MalformedRecordError{Table: TableTrainings, Reason: "missing header row"}
	if header.Error() != "trainings: malformed record: missing header row" {
		t.Fatalf("unexpected message: %q", header.Error())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Employees:   writeFile(t, dir, "employee_data.csv", employeesCSV),
		CareerPaths: writeFile(t, dir, "career_paths.csv", careerPathsCSV),
		Trainings:   writeFile(t, dir, "trainings.csv", trainingsCSV),
	}

	tables, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables.Employees) != 2 || len(tables.CareerPaths) != 2 || len(tables.Trainings) != 2 {
		t.Fatalf("unexpected table sizes: %d/%d/%d", len(tables.Employees), len(tables.CareerPaths), len(tables.Trainings))
	}

	src.Trainings = filepath.Join(dir, "missing.csv")
	if _, err := Load(src); err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	src.Trainings = writeFile(t, dir, "broken.csv", "training_id\nT1\n")
	_, err = Load(src)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected malformed record error, got %v", err)
	}
}

func readEmployees(input string) error {
	_, err := ReadEmployees(strings.NewReader(input))
	return err
}

func readCareerPaths(input string) error {
	_, err := ReadCareerPaths(strings.NewReader(input))
	return err
}

func readTrainings(input string) error {
	_, err := ReadTrainings(strings.NewReader(input))
	return err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
