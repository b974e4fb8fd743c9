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

package imagery

import (
	"fmt"
	"sort"
	"strings"

	"poetics/merror"
	"poetics/taxonomy"
)

// OverlapPolicy decides what happens to single-character
// matches whose characters are also part of a matched
// multi-character term.
type OverlapPolicy string

const (

	// OverlapKeep counts both the multi-character term and
	// each of its characters independently.
	OverlapKeep OverlapPolicy = "keep"

	// OverlapSubtract removes occurrences consumed by multi-character
	// terms from the counts of their characters. Single-character
	// matches which drop to zero are removed.
	OverlapSubtract OverlapPolicy = "subtract"
)

func (p OverlapPolicy) Validate() error {
	if p != OverlapKeep && p != OverlapSubtract {
		return merror.InputError{Msg: fmt.Sprintf("unknown overlap policy `%s`", p)}
	}
	return nil
}

// Match is a single imagery term found in a poem.
type Match struct {
	Word     string            `json:"word"`
	Category taxonomy.Category `json:"category"`
	Count    int               `json:"count"`
	Tier     taxonomy.Tier     `json:"type"`
}

type matchKey struct {
	word     string
	category taxonomy.Category
}

// accumulator collects matches keyed by (word, category)
// while remembering the order in which keys were first seen.
type accumulator struct {
	index map[matchKey]int
	items []Match
}

func (acc *accumulator) add(m Match) {
	k := matchKey{word: m.Word, category: m.Category}
	if i, ok := acc.index[k]; ok {
		acc.items[i].Count += m.Count
		return
	}
	acc.index[k] = len(acc.items)
	acc.items = append(acc.items, m)
}

func newAccumulator() *accumulator {
	return &accumulator{
		index: make(map[matchKey]int),
		items: make([]Match, 0, 32),
	}
}

func subtractOverlaps(items []Match) []Match {
	consumed := make(map[string]int)
	for _, m := range items {
		if m.Tier != taxonomy.TierMultiChar {
			continue
		}
		for _, r := range m.Word {
			consumed[string(r)] += m.Count
		}
	}
	ans := make([]Match, 0, len(items))
	for _, m := range items {
		if m.Tier == taxonomy.TierSingleChar {
			m.Count -= consumed[m.Word]
			if m.Count <= 0 {
				continue
			}
		}
		ans = append(ans, m)
	}
	return ans
}

// Extract finds all the taxonomy terms in the content.
// Multi-character matches do not reduce the counts of their
// characters (see OverlapKeep).
func Extract(content string, tx *taxonomy.Taxonomy) []Match {
	return ExtractWithPolicy(content, tx, OverlapKeep)
}

// ExtractWithPolicy finds all the taxonomy terms in the content.
// Single-character terms are counted first, then multi-character
// ones (counting non-overlapping occurrences). The result is sorted
// by count in descending order with ties kept in the taxonomy order.
func ExtractWithPolicy(content string, tx *taxonomy.Taxonomy, policy OverlapPolicy) []Match {
	acc := newAccumulator()
	for _, tier := range []taxonomy.Tier{taxonomy.TierSingleChar, taxonomy.TierMultiChar} {
		tx.Each(tier, func(cat taxonomy.Category, term string) {
			if cnt := strings.Count(content, term); cnt > 0 {
				acc.add(Match{Word: term, Category: cat, Count: cnt, Tier: tier})
			}
		})
	}
	ans := acc.items
	if policy == OverlapSubtract {
		ans = subtractOverlaps(ans)
	}
	sort.SliceStable(ans, func(i, j int) bool {
		return ans[i].Count > ans[j].Count
	})
	return ans
}

// TotalCount sums counts of all the matches.
func TotalCount(matches []Match) int {
	var ans int
	for _, m := range matches {
		ans += m.Count
	}
	return ans
}
