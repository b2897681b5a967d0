package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOnProvingSuccessAndFailure(t *testing.T) {
	r := New(42, 150)
	if r.Success {
		t.Fatal("new report should start unsuccessful")
	}

	r.OnProvingSuccess(1000, 2500, []byte{0x01, 0x02})
	if !r.Success || r.Cycles != 1000 || r.ProvingMilliseconds != 2500 {
		t.Fatalf("unexpected report after success: %+v", r)
	}

	r.OnProvingFailure()
	if r.Success {
		t.Fatal("expected report to be marked unsuccessful")
	}
}

func TestAppendToCSVWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "reports.csv")

	r1 := New(1, 100)
	r1.OnProvingSuccess(500, 1000, nil)
	if err := r1.AppendToCSV(csvPath); err != nil {
		t.Fatalf("AppendToCSV: %v", err)
	}

	r2 := New(2, 200)
	r2.OnProvingFailure()
	if err := r2.AppendToCSV(csvPath); err != nil {
		t.Fatalf("AppendToCSV: %v", err)
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 1 header + 2 rows, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != strings.TrimRight(csvHeader, "\n") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "true,500,1000,100,1100") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "false,0,0,200,200") {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}
