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

package results

import (
	"sort"

	"github.com/czcorpus/cnc-gokit/collections"
)

const (
	DefaultWordCloudSize = 50
)

type PoemRef struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// WordCloudItem describes a single imagery word
// across the whole corpus.
type WordCloudItem struct {
	Text string `json:"text"`

	// Frequency is the number of poems the word appears in
	Frequency int `json:"frequency"`

	// TotalCount is the number of all the word occurrences
	TotalCount int `json:"totalCount"`

	Categories []string  `json:"categories"`
	Poems      []PoemRef `json:"poems"`
}

// WordCloud groups imagery of all the poems by word. Items are sorted
// by total count in descending order and cut to maxItems (zero or
// negative maxItems means DefaultWordCloudSize).
func WordCloud(poems []Poem, maxItems int) []*WordCloudItem {
	if maxItems <= 0 {
		maxItems = DefaultWordCloudSize
	}
	index := make(map[string]*WordCloudItem)
	ans := make([]*WordCloudItem, 0, 64)
	for i, poem := range poems {
		for _, m := range poem.Imagery {
			item, ok := index[m.Word]
			if !ok {
				item = &WordCloudItem{Text: m.Word}
				index[m.Word] = item
				ans = append(ans, item)
			}
			item.TotalCount += m.Count
			if !collections.SliceContains(item.Categories, m.Category.String()) {
				item.Categories = append(item.Categories, m.Category.String())
			}
			if len(item.Poems) == 0 || item.Poems[len(item.Poems)-1].Index != i {
				item.Poems = append(item.Poems, PoemRef{Index: i, Title: poem.Title})
				item.Frequency++
			}
		}
	}
	sort.SliceStable(ans, func(i, j int) bool {
		return ans[i].TotalCount > ans[j].TotalCount
	})
	if len(ans) > maxItems {
		ans = ans[:maxItems]
	}
	return ans
}
