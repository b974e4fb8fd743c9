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
	"context"
	"time"

	"poetics/results"
	"poetics/taxonomy"
)

const (
	DefaultSourceDesc = "本地TXT文件"
)

type AnalyzeArgs struct {
	Text    string
	Author  string
	Dynasty string
	Source  string
}

// Analyzer produces complete corpus documents. It is shared
// by the batch extractor, the API server and workers.
type Analyzer struct {
	tx         *taxonomy.Taxonomy
	dfltMeta   AuthorMeta
	dfltSource string
	location   *time.Location
	opts       []BuilderOption
}

func (an *Analyzer) Taxonomy() *taxonomy.Taxonomy {
	return an.tx
}

// Analyze builds a corpus document out of the provided text. Missing
// author, dynasty and source are replaced by configured defaults.
// Text with no poems is valid and produces an empty document.
func (an *Analyzer) Analyze(ctx context.Context, args AnalyzeArgs) (*results.Document, error) {
	meta := an.dfltMeta
	if args.Author != "" {
		meta.Author = args.Author
	}
	if args.Dynasty != "" {
		meta.Dynasty = args.Dynasty
	}
	source := args.Source
	if source == "" {
		source = an.dfltSource
	}
	res, err := NewBuilder(an.tx, meta, an.opts...).Build(ctx, args.Text)
	if err != nil {
		return nil, err
	}
	return results.NewDocument(
		res.Poems,
		res.Stats,
		results.DocumentProps{
			Author:         meta.Author,
			Dynasty:        meta.Dynasty,
			Source:         source,
			SourceChecksum: results.Checksum(args.Text),
			CollectedAt:    time.Now().In(an.location),
		},
	), nil
}

func NewAnalyzer(
	tx *taxonomy.Taxonomy,
	dfltMeta AuthorMeta,
	dfltSource string,
	location *time.Location,
	opts ...BuilderOption,
) *Analyzer {
	if location == nil {
		location = time.Local
	}
	if dfltSource == "" {
		dfltSource = DefaultSourceDesc
	}
	return &Analyzer{
		tx:         tx,
		dfltMeta:   dfltMeta,
		dfltSource: dfltSource,
		location:   location,
		opts:       opts,
	}
}
