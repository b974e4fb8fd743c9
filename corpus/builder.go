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
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"poetics/imagery"
	"poetics/results"
	"poetics/taxonomy"
)

const (
	DefaultAuthor  = "杜甫"
	DefaultDynasty = "唐代"
)

// AuthorMeta is attached to each poem of a corpus
type AuthorMeta struct {
	Author  string `json:"author"`
	Dynasty string `json:"dynasty"`
}

func DefaultAuthorMeta() AuthorMeta {
	return AuthorMeta{Author: DefaultAuthor, Dynasty: DefaultDynasty}
}

// Result is a built corpus along with its statistics
type Result struct {
	Poems []results.Poem
	Stats results.CorpusStats
}

// --------

type BuilderOption func(b *Builder)

// WithNumWorkers allows extracting imagery of
// multiple poems concurrently.
func WithNumWorkers(n int) BuilderOption {
	return func(b *Builder) {
		b.numWorkers = n
	}
}

func WithOverlapPolicy(policy imagery.OverlapPolicy) BuilderOption {
	return func(b *Builder) {
		b.overlap = policy
	}
}

func WithNormalizer(n *Normalizer) BuilderOption {
	return func(b *Builder) {
		b.normalizer = n
	}
}

// Builder turns a source text into a corpus of poems
// annotated with imagery.
type Builder struct {
	tx         *taxonomy.Taxonomy
	meta       AuthorMeta
	numWorkers int
	overlap    imagery.OverlapPolicy
	normalizer *Normalizer
}

func (b *Builder) buildPoem(raw RawPoem) results.Poem {
	content := raw.Content()
	ans := results.Poem{
		Title:   raw.Title,
		Content: content,
		Imagery: imagery.ExtractWithPolicy(content, b.tx, b.overlap),
		Dynasty: b.meta.Dynasty,
		Author:  b.meta.Author,
	}
	log.Debug().
		Str("title", ans.Title).
		Int("numLines", len(raw.Lines)).
		Int("numImagery", len(ans.Imagery)).
		Int("numOccurrences", imagery.TotalCount(ans.Imagery)).
		Msg("extracted poem")
	return ans
}

func (b *Builder) extractSequential(ctx context.Context, raw []RawPoem, poems []results.Poem) error {
	for i, rec := range raw {
		if err := ctx.Err(); err != nil {
			return err
		}
		poems[i] = b.buildPoem(rec)
	}
	return nil
}

func (b *Builder) extractParallel(ctx context.Context, raw []RawPoem, poems []results.Poem) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.numWorkers)
	for i, rec := range raw {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			poems[i] = b.buildPoem(rec)
			return nil
		})
	}
	return eg.Wait()
}

// Build segments the text, extracts imagery of each poem and
// aggregates corpus statistics. Aggregation always starts once
// all the poems are processed. The only possible error is
// a cancelled context.
func (b *Builder) Build(ctx context.Context, text string) (Result, error) {
	if b.normalizer != nil {
		text = b.normalizer.Normalize(text)
	}
	raw := Segment(text)
	log.Info().Int("numPoems", len(raw)).Msg("segmented source text")
	poems := make([]results.Poem, len(raw))
	var err error
	if b.numWorkers > 1 && len(raw) > 1 {
		err = b.extractParallel(ctx, raw, poems)

	} else {
		err = b.extractSequential(ctx, raw, poems)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to build corpus: %w", err)
	}
	return Result{
		Poems: poems,
		Stats: results.Aggregate(poems),
	}, nil
}

func (b *Builder) Meta() AuthorMeta {
	return b.meta
}

func NewBuilder(tx *taxonomy.Taxonomy, meta AuthorMeta, opts ...BuilderOption) *Builder {
	ans := &Builder{
		tx:         tx,
		meta:       meta,
		numWorkers: 1,
		overlap:    imagery.OverlapKeep,
	}
	for _, opt := range opts {
		opt(ans)
	}
	return ans
}

// Build is a sequential variant of Builder.Build which
// cannot fail.
func Build(text string, tx *taxonomy.Taxonomy, meta AuthorMeta) Result {
	ans, err := NewBuilder(tx, meta).Build(context.Background(), text)
	if err != nil {
		// background context is never cancelled
		panic(err)
	}
	return ans
}
