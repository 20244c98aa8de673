package naming

import (
	"testing"
	"time"
)

func TestInstance(t *testing.T) {
	got := Instance("vm", "us-central1-a")
	want := "vm-us-central1-a"
	if got != want {
		t.Errorf("Instance() = %q, want %q", got, want)
	}
}

func TestReportFile(t *testing.T) {
	got := ReportFile("vm")
	want := "vm-sweep-report.json"
	if got != want {
		t.Errorf("ReportFile() = %q, want %q", got, want)
	}
}

func TestReportObject(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	got := ReportObject("vm", ts)
	want := "vm/sweep-20240315-103000.json"
	if got != want {
		t.Errorf("ReportObject() = %q, want %q", got, want)
	}
}
