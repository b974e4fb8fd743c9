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
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionDateFormat = "2006-01-02 15:04:05"
)

type Metadata struct {
	TotalPoems                 int    `json:"total_poems"`
	TotalImageryWords          int    `json:"total_imagery_words"`
	TotalImageryOccurrences    int    `json:"total_imagery_occurrences"`
	TotalSingleCharImagery     int    `json:"total_single_char_imagery"`
	TotalSingleCharOccurrences int    `json:"total_single_char_occurrences"`
	Author                     string `json:"author"`
	Dynasty                    string `json:"dynasty"`
	Source                     string `json:"source"`
	CollectionDate             string `json:"collection_date"`
	RunID                      string `json:"run_id"`
	SourceChecksum             string `json:"source_checksum,omitempty"`
}

// DocumentProps carries run metadata which is not
// produced by the analysis itself.
type DocumentProps struct {
	Author         string
	Dynasty        string
	Source         string
	SourceChecksum string
	CollectedAt    time.Time
}

// Document is the complete serializable output of a corpus analysis.
type Document struct {
	Metadata          Metadata    `json:"metadata"`
	ImageryStatistics CorpusStats `json:"imagery_statistics"`
	Poems             []Poem      `json:"poems"`
}

func (doc *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func NewDocument(poems []Poem, stats CorpusStats, props DocumentProps) *Document {
	if poems == nil {
		poems = []Poem{}
	}
	return &Document{
		Metadata: Metadata{
			TotalPoems:                 len(poems),
			TotalImageryWords:          stats.TotalUniqueWords,
			TotalImageryOccurrences:    stats.TotalOccurrences,
			TotalSingleCharImagery:     stats.TotalUniqueSingleCharWords,
			TotalSingleCharOccurrences: stats.TotalSingleCharOccurrences,
			Author:                     props.Author,
			Dynasty:                    props.Dynasty,
			Source:                     props.Source,
			CollectionDate:             props.CollectedAt.Format(CollectionDateFormat),
			RunID:                      uuid.New().String(),
			SourceChecksum:             props.SourceChecksum,
		},
		ImageryStatistics: stats,
		Poems:             poems,
	}
}
