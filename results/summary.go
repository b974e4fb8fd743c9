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

const (
	SummaryTopItems = 20
)

type CategoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// Summary is a human oriented overview of corpus statistics
type Summary struct {
	NumPoems       int             `json:"numPoems"`
	CategoryShares []CategoryShare `json:"categoryShares"`
	TopSingleChar  FreqItemList    `json:"topSingleChar"`
	TopWords       FreqItemList    `json:"topWords"`
	// TopWordsShare is the percentage of all the imagery
	// occurrences covered by TopWords
	TopWordsShare float64 `json:"topWordsShare"`
}

func Summarize(numPoems int, stats CorpusStats) Summary {
	ans := Summary{
		NumPoems:       numPoems,
		CategoryShares: make([]CategoryShare, 0, len(stats.CategoryFrequency)),
		TopSingleChar:  stats.SingleCharFrequency.Cut(SummaryTopItems),
		TopWords:       stats.WordFrequency.Cut(SummaryTopItems),
	}
	if stats.TotalOccurrences > 0 {
		ans.TopWordsShare = NormRound(
			float64(ans.TopWords.Total()) / float64(stats.TotalOccurrences) * 100)
	}
	for _, item := range stats.CategoryFrequency {
		var pct float64
		if stats.TotalOccurrences > 0 {
			pct = NormRound(float64(item.Freq) / float64(stats.TotalOccurrences) * 100)
		}
		ans.CategoryShares = append(
			ans.CategoryShares,
			CategoryShare{Category: item.Word, Count: item.Freq, Percent: pct},
		)
	}
	return ans
}
