package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCSVFromReader(t *testing.T) {
	input := `revenue,region,users
100.5,east,10
200.25,west,20
300,north,30
`
	series, err := LoadCSVFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}

	revenue, ok := series["revenue"]
	if !ok {
		t.Fatal("revenue column missing")
	}
	if len(revenue) != 3 || revenue[0] != 100.5 || revenue[1] != 200.25 || revenue[2] != 300 {
		t.Errorf("revenue = %v", revenue)
	}

	if _, ok := series["region"]; ok {
		t.Error("non-numeric column should be dropped")
	}
	if users := series["users"]; len(users) != 3 {
		t.Errorf("users = %v, want 3 values", users)
	}
}

func TestLoadCSVBlankHeader(t *testing.T) {
	input := "a,,c\n1,2,3\n"
	series, err := LoadCSVFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}
	if _, ok := series["column_2"]; !ok {
		t.Errorf("blank header should become column_2, got columns %v", keys(series))
	}
}

func TestLoadCSVRowWidthMismatch(t *testing.T) {
	input := "a,b\n1,2\n3\n"
	if _, err := LoadCSVFromReader(strings.NewReader(input)); err == nil {
		t.Error("expected error for a short row")
	}
}

func TestLoadCSVEmptyInput(t *testing.T) {
	if _, err := LoadCSVFromReader(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestLoadCSVNoNumericColumns(t *testing.T) {
	input := "name,city\nalice,berlin\nbob,paris\n"
	if _, err := LoadCSVFromReader(strings.NewReader(input)); err == nil {
		t.Error("expected error when no column is numeric")
	}
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x\n1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	series, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(series["x"]) != 3 {
		t.Errorf("x = %v, want 3 values", series["x"])
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func keys(m map[string][]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
