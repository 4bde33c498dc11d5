package core

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Parameters are the three values of TPM2_DictionaryAttackParameters
type Parameters struct {
	MaxTries        uint32
	RecoveryTime    uint32
	LockoutRecovery uint32
}

func (p Parameters) String() string {
	return fmt.Sprintf("max-tries: %d\nrecovery-time: %d\nlockout-recovery: %d\n",
		p.MaxTries, p.RecoveryTime, p.LockoutRecovery)
}

// RenderDiff shows the change from current to planned, one parameter per
// line. With color set the output uses ANSI colours instead of -/+ markers.
func RenderDiff(current, planned Parameters, color bool) string {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(current.String(), planned.String())
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	if color {
		return dmp.DiffPrettyText(diffs)
	}

	var buf strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
		}
	}
	return buf.String()
}
