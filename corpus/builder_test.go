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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"poetics/imagery"
	"poetics/taxonomy"
)

func TestBuildSpringView(t *testing.T) {
	res := Build("春望\n国破山河在，城春草木深。", taxonomy.Default(), DefaultAuthorMeta())
	require.Len(t, res.Poems, 1)
	poem := res.Poems[0]
	assert.Equal(t, "春望", poem.Title)
	assert.Equal(t, "国破山河在，城春草木深。", poem.Content)
	assert.Equal(t, "杜甫", poem.Author)
	assert.Equal(t, "唐代", poem.Dynasty)
	assert.Len(t, poem.Imagery, 6)
	assert.Equal(t, 6, res.Stats.TotalOccurrences)
	assert.Equal(t, 6, res.Stats.TotalSingleCharOccurrences)
	assert.Equal(t, 2, res.Stats.CategoryFrequency.FindItem("自然景观").Freq)
}

func TestBuildEmptyText(t *testing.T) {
	res := Build("", taxonomy.Default(), DefaultAuthorMeta())
	assert.Empty(t, res.Poems)
	assert.Zero(t, res.Stats.TotalOccurrences)
	assert.Zero(t, res.Stats.TotalUniqueWords)
	assert.Empty(t, res.Stats.WordFrequency)
}

func TestBuildCustomAuthor(t *testing.T) {
	res := Build(twoPoems, taxonomy.Default(), AuthorMeta{Author: "李白", Dynasty: "唐"})
	require.Len(t, res.Poems, 2)
	for _, p := range res.Poems {
		assert.Equal(t, "李白", p.Author)
		assert.Equal(t, "唐", p.Dynasty)
	}
}

func manyPoems(n int) string {
	var buff strings.Builder
	for i := 0; i < n; i++ {
		buff.WriteString(fmt.Sprintf("秋兴之%d\n", i))
		buff.WriteString("玉露凋伤枫树林，巫山巫峡气萧森。\n")
		if i%3 == 0 {
			buff.WriteString("江间波浪兼天涌，塞上风云接地阴。\n")
		}
		buff.WriteString("\n")
	}
	return buff.String()
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)
	text := manyPoems(40)
	seq := Build(text, taxonomy.Default(), DefaultAuthorMeta())
	par, err := NewBuilder(taxonomy.Default(), DefaultAuthorMeta(), WithNumWorkers(4)).
		Build(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, par.Poems, 40)
	assert.Equal(t, seq, par)
}

func TestBuildCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, numWorkers := range []int{1, 4} {
		_, err := NewBuilder(taxonomy.Default(), DefaultAuthorMeta(), WithNumWorkers(numWorkers)).
			Build(ctx, manyPoems(5))
		assert.True(t, errors.Is(err, context.Canceled))
	}
}

func TestBuildWithOverlapPolicy(t *testing.T) {
	text := "客至\n江湖满地一渔翁，江上。"
	keep := Build(text, taxonomy.Default(), DefaultAuthorMeta())
	sub, err := NewBuilder(
		taxonomy.Default(), DefaultAuthorMeta(), WithOverlapPolicy(imagery.OverlapSubtract)).
		Build(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 2, keep.Stats.SingleCharFrequency.FindItem("江").Freq)
	assert.Equal(t, 1, sub.Stats.SingleCharFrequency.FindItem("江").Freq)
	assert.Nil(t, sub.Stats.SingleCharFrequency.FindItem("湖"))
	assert.NotNil(t, sub.Stats.WordFrequency.FindItem("江湖"))
}

func TestBuildWithNormalizer(t *testing.T) {
	text := "春望\n国破山河在,城春草木深"
	res, err := NewBuilder(
		taxonomy.Default(), DefaultAuthorMeta(), WithNormalizer(&Normalizer{WidenPunctuation: true})).
		Build(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, res.Poems, 1)
	assert.Equal(t, "春望", res.Poems[0].Title)
}
