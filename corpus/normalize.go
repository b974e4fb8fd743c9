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

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// halfwidthPunctuation lists characters which have a full-width
// counterpart among the punctuation used to detect verses
const halfwidthPunctuation = ",?!;:｡"

const byteOrderMark = "\ufeff"

// Normalizer prepares a source text for segmentation.
type Normalizer struct {

	// WidenPunctuation converts half-width punctuation
	// (e.g. `,` or `｡`) to its full-width form so lines
	// typed with an ASCII keyboard are still recognized
	// as verses.
	WidenPunctuation bool
}

// Normalize removes a possible byte order mark, applies
// Unicode NFC and (optionally) widens punctuation.
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFC.String(strings.TrimPrefix(text, byteOrderMark))
	if !n.WidenPunctuation {
		return text
	}
	var buff strings.Builder
	buff.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(halfwidthPunctuation, r) {
			buff.WriteString(width.Widen.String(string(r)))

		} else {
			buff.WriteRune(r)
		}
	}
	return buff.String()
}
