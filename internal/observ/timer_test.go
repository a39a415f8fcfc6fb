package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	time.Sleep(time.Millisecond)
	tm.End(idx, "2 files")

	report := tm.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "2 files" {
		t.Fatalf("phase = %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 || report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("durations: %+v", report)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(0, "ignored")
	tm.End(-1, "ignored")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("report = %+v", got)
	}
}

func TestSummaryContainsTotal(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("expand")
	tm.End(idx, "")
	if s := tm.Summary(); !strings.Contains(s, "total") || !strings.Contains(s, "expand") {
		t.Fatalf("summary: %q", s)
	}
}
