// Package diffutil renders unified diffs between two versions of a file's
// content, the way `picogit diff` shows working-tree changes against what's
// staged (spec.md §4.B, grounded on original_source/th.py's diff(), which
// shells out to Python's difflib.unified_diff).
package diffutil

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Separator is printed between two files' diffs when rendering more than one
// path in a single report (original_source/th.py uses a 70-dash rule).
const Separator = "----------------------------------------------------------------------"

// Unified renders a unified diff between "before" and "after", labeled with
// the two original_source headers used by th.py's diff(): "{path} (index)"
// for the staged/before side and "{path} (working copy)" for the on-disk/
// after side. Returns an empty string when the two contents are identical.
// Every line of both versions is printed, prefixed with ' ', '-' or '+';
// there are no "@@" hunk headers and unchanged lines are not trimmed to a
// context window.
func Unified(path string, before, after []byte) string {
	dmp := diffmatchpatch.New()
	beforeLines, afterLines, lineArray := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffMain(beforeLines, afterLines, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	if len(diffs) == 0 || (len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual) {
		return ""
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s (index)\n", path)
	fmt.Fprintf(&buf, "+++ %s (working copy)\n", path)
	for _, d := range diffs {
		prefix := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = '+'
		case diffmatchpatch.DiffDelete:
			prefix = '-'
		case diffmatchpatch.DiffEqual:
			prefix = ' '
		}
		for _, line := range splitKeepingTrailingEmpty(d.Text) {
			buf.WriteByte(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// splitKeepingTrailingEmpty splits s on newlines without producing a
// trailing empty element for the final "\n" (diff lines already end in one).
func splitKeepingTrailingEmpty(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
