// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package golden

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const noNewlineMarker = "\\ No newline at end of file\n"

// Diff is a unified diff as an ordered list of lines. Each line carries its
// own terminating newline. An empty Diff means the inputs were identical.
type Diff []string

// Empty reports whether the compared texts were identical.
func (d Diff) Empty() bool {
	return len(d) == 0
}

// String concatenates the lines.
func (d Diff) String() string {
	return strings.Join(d, "")
}

// Stats counts added and removed body lines, ignoring the file headers and
// hunk headers.
func (d Diff) Stats() (added, removed int) {
	for i, line := range d {
		// lines 0 and 1 are the ---/+++ headers
		if i < 2 || strings.HasPrefix(line, "@@") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// SplitLines splits s after every newline, keeping the line endings. A
// trailing fragment without a newline is kept as the last line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Unified computes the unified diff of a against b with n lines of context.
// Matching uses the longest-matching-block algorithm of difflib.
func Unified(a, b []string, fromLabel, toLabel string, n int) Diff {
	groups := difflib.NewMatcher(a, b).GetGroupedOpCodes(n)
	if len(groups) == 0 {
		return Diff{}
	}

	out := Diff{
		"--- " + fromLabel + "\n",
		"+++ " + toLabel + "\n",
	}

	for _, g := range groups {
		first, last := g[0], g[len(g)-1]
		out = append(out, fmt.Sprintf("@@ -%s +%s @@\n",
			formatRange(first.I1, last.I2), formatRange(first.J1, last.J2)))

		for _, c := range g {
			if c.Tag == 'e' {
				out = appendPrefixed(out, " ", a[c.I1:c.I2])
				continue
			}
			if c.Tag == 'r' || c.Tag == 'd' {
				out = appendPrefixed(out, "-", a[c.I1:c.I2])
			}
			if c.Tag == 'r' || c.Tag == 'i' {
				out = appendPrefixed(out, "+", b[c.J1:c.J2])
			}
		}
	}

	return out
}

func appendPrefixed(out Diff, prefix string, lines []string) Diff {
	for _, l := range lines {
		if strings.HasSuffix(l, "\n") {
			out = append(out, prefix+l)
			continue
		}
		out = append(out, prefix+l+"\n", noNewlineMarker)
	}
	return out
}

// formatRange renders a hunk range: "start" for one line, "start,len"
// otherwise, with start one-based (zero for an empty range).
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
