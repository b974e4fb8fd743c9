// Copyright 2026 The POETICS authors
//   This file is part of POETICS.
//
//  POETICS is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  POETICS is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with POETICS.  If not, see <https://www.gnu.org/licenses/>.

package corpus

import (
	"strings"
	"unicode/utf8"
)

const (
	// Punctuation lists characters which mark a line
	// as a verse (i.e. not a title)
	Punctuation = "，。？！；："

	titleFallbackLen    = 10
	titleFallbackSuffix = "..."
)

var enumerationMarks = strings.NewReplacer(
	"①", "", "②", "", "③", "", "④", "", "⑤", "",
	"⑥", "", "⑦", "", "⑧", "", "⑨", "", "⑩", "",
)

// RawPoem is a poem as found in the source text
// before any imagery is extracted.
type RawPoem struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Content joins poem lines and removes enumeration
// marks (①, ②, ...) used by some editions.
func (rp RawPoem) Content() string {
	return enumerationMarks.Replace(strings.Join(rp.Lines, "\n"))
}

func hasPunctuation(line string) bool {
	return strings.ContainsAny(line, Punctuation)
}

// isTitleLine tests whether the i-th line is a title. A title has
// no punctuation while the line right after it (blank or not) has.
func isTitleLine(lines []string, i int) bool {
	if i >= len(lines)-1 {
		return false
	}
	return !hasPunctuation(strings.TrimSpace(lines[i])) &&
		hasPunctuation(strings.TrimSpace(lines[i+1]))
}

func fallbackTitle(firstLine string) string {
	if utf8.RuneCountInString(firstLine) > titleFallbackLen {
		return string([]rune(firstLine)[:titleFallbackLen]) + titleFallbackSuffix
	}
	return firstLine
}

func appendClosed(poems []RawPoem, curr RawPoem) []RawPoem {
	if len(curr.Lines) == 0 {
		return poems
	}
	if curr.Title == "" {
		curr.Title = fallbackTitle(curr.Lines[0])
	}
	return append(poems, curr)
}

// Segment splits a text with no structural markup into poems.
// Blank lines are ignored. A line without punctuation followed
// by a line with punctuation starts a new poem, all other lines
// are verses of the current poem. Poems without verses are
// dropped and poems without a title get one derived from
// their first verse. Text matching no title at all ends up
// as a single poem.
func Segment(text string) []RawPoem {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	ans := make([]RawPoem, 0, 16)
	var curr RawPoem
	for i, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if isTitleLine(lines, i) {
			if len(curr.Lines) > 0 {
				ans = appendClosed(ans, curr)
				curr = RawPoem{Title: line}

			} else {
				curr.Title = line
			}
			continue
		}
		curr.Lines = append(curr.Lines, line)
	}
	return appendClosed(ans, curr)
}
