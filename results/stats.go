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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"poetics/imagery"
	"poetics/taxonomy"
)

const (
	MaxWordFreqItems       = 100
	MaxSingleCharFreqItems = 50
)

// Poem is a fully processed poem with its imagery.
type Poem struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Imagery []imagery.Match `json:"imagery"`
	Dynasty string          `json:"dynasty"`
	Author  string          `json:"author"`
}

// HasWord tells whether the word is among the poem's imagery.
func (p Poem) HasWord(w string) bool {
	for _, m := range p.Imagery {
		if m.Word == w {
			return true
		}
	}
	return false
}

// ----

type FreqItem struct {
	Word string `json:"word"`
	Freq int    `json:"freq"`
}

// FreqItemList is an ordered frequency table. In JSON, it is
// encoded as an object with keys in the list order.
type FreqItemList []*FreqItem

func (flist FreqItemList) Cut(maxItems int) FreqItemList {
	if len(flist) > maxItems {
		return flist[:maxItems]
	}
	return flist
}

func (flist FreqItemList) FindItem(w string) *FreqItem {
	for _, v := range flist {
		if v.Word == w {
			return v
		}
	}
	return nil
}

func (flist FreqItemList) Total() int {
	var ans int
	for _, v := range flist {
		ans += v.Freq
	}
	return ans
}

func (flist FreqItemList) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	buff.WriteByte('{')
	for i, item := range flist {
		if i > 0 {
			buff.WriteByte(',')
		}
		key, err := json.Marshal(item.Word)
		if err != nil {
			return nil, err
		}
		buff.Write(key)
		buff.WriteString(fmt.Sprintf(":%d", item.Freq))
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

func (flist *FreqItemList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("frequency list must be encoded as an object")
	}
	ans := make(FreqItemList, 0, 16)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		word, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid frequency list key %v", tok)
		}
		var freq int
		if err := dec.Decode(&freq); err != nil {
			return fmt.Errorf("invalid frequency of %s: %w", word, err)
		}
		ans = append(ans, &FreqItem{Word: word, Freq: freq})
	}
	*flist = ans
	return nil
}

// freqCounter sums frequencies of words and remembers
// the order of their first appearance
type freqCounter struct {
	index map[string]int
	items FreqItemList
}

func (fc *freqCounter) add(word string, freq int) {
	if i, ok := fc.index[word]; ok {
		fc.items[i].Freq += freq
		return
	}
	fc.index[word] = len(fc.items)
	fc.items = append(fc.items, &FreqItem{Word: word, Freq: freq})
}

func (fc *freqCounter) size() int {
	return len(fc.items)
}

// sorted returns items sorted by frequency in descending order.
// Equal frequencies keep the order of the first appearance.
func (fc *freqCounter) sorted() FreqItemList {
	ans := make(FreqItemList, len(fc.items))
	copy(ans, fc.items)
	sort.SliceStable(ans, func(i, j int) bool {
		return ans[i].Freq > ans[j].Freq
	})
	return ans
}

func newFreqCounter() *freqCounter {
	return &freqCounter{
		index: make(map[string]int),
		items: make(FreqItemList, 0, 64),
	}
}

// ----

// CorpusStats contains corpus-wide imagery frequencies.
type CorpusStats struct {
	WordFrequency              FreqItemList `json:"word_frequency"`
	CategoryFrequency          FreqItemList `json:"category_frequency"`
	SingleCharFrequency        FreqItemList `json:"single_char_frequency"`
	TotalUniqueWords           int          `json:"total_unique_imagery"`
	TotalOccurrences           int          `json:"total_imagery_occurrences"`
	TotalUniqueSingleCharWords int          `json:"total_single_char_imagery"`
	TotalSingleCharOccurrences int          `json:"total_single_char_occurrences"`
}

// Aggregate rolls imagery of all the poems into corpus-wide
// frequency tables. Per-poem counts are taken as they are,
// i.e. a word found in two poems contributes twice.
func Aggregate(poems []Poem) CorpusStats {
	words := newFreqCounter()
	cats := newFreqCounter()
	singleChars := newFreqCounter()
	var ans CorpusStats
	for _, poem := range poems {
		for _, m := range poem.Imagery {
			words.add(m.Word, m.Count)
			cats.add(m.Category.String(), m.Count)
			ans.TotalOccurrences += m.Count
			if m.Tier == taxonomy.TierSingleChar {
				singleChars.add(m.Word, m.Count)
				ans.TotalSingleCharOccurrences += m.Count
			}
		}
	}
	ans.WordFrequency = words.sorted().Cut(MaxWordFreqItems)
	ans.CategoryFrequency = cats.sorted()
	ans.SingleCharFrequency = singleChars.sorted().Cut(MaxSingleCharFreqItems)
	ans.TotalUniqueWords = words.size()
	ans.TotalUniqueSingleCharWords = singleChars.size()
	return ans
}
