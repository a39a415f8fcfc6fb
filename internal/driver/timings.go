package driver

import (
	"encoding/json"
	"fmt"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/observ"
	"github.com/wrachwal/deftuple/internal/source"
)

// appendTimingDiagnostic attaches phase timings as an info diagnostic
// with a machine-readable JSON note.
func appendTimingDiagnostic(bag *diag.Bag, report observ.Report) {
	if bag == nil {
		return
	}
	msg := fmt.Sprintf("timings: total %.2f ms", report.TotalMS)

	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg)
	entry = entry.WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
