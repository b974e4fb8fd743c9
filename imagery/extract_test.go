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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/taxonomy"
)

func riverTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	tx, err := taxonomy.New(
		[]taxonomy.CategoryTerms{
			{Category: "自然景观", Terms: []string{"江", "水"}},
		},
		[]taxonomy.CategoryTerms{
			{Category: "自然景观", Terms: []string{"江水"}},
		},
	)
	require.NoError(t, err)
	return tx
}

func TestExtractSpringView(t *testing.T) {
	ans := Extract("国破山河在，城春草木深。", taxonomy.Default())
	expected := []Match{
		{Word: "山", Category: "自然景观", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "河", Category: "自然景观", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "草", Category: "植物", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "木", Category: "植物", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "城", Category: "建筑场所", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "春", Category: "时间季节", Count: 1, Tier: taxonomy.TierSingleChar},
	}
	if diff := cmp.Diff(expected, ans); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeepsDoubleCounting(t *testing.T) {
	ans := Extract("江水江", riverTaxonomy(t))
	expected := []Match{
		{Word: "江", Category: "自然景观", Count: 2, Tier: taxonomy.TierSingleChar},
		{Word: "水", Category: "自然景观", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "江水", Category: "自然景观", Count: 1, Tier: taxonomy.TierMultiChar},
	}
	if diff := cmp.Diff(expected, ans); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSubtractPolicy(t *testing.T) {
	ans := ExtractWithPolicy("江水江", riverTaxonomy(t), OverlapSubtract)
	expected := []Match{
		{Word: "江", Category: "自然景观", Count: 1, Tier: taxonomy.TierSingleChar},
		{Word: "江水", Category: "自然景观", Count: 1, Tier: taxonomy.TierMultiChar},
	}
	if diff := cmp.Diff(expected, ans); diff != "" {
		t.Errorf("ExtractWithPolicy() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNonOverlappingMultiChar(t *testing.T) {
	tx, err := taxonomy.New(nil, []taxonomy.CategoryTerms{
		{Category: "x", Terms: []string{"江江"}},
	})
	require.NoError(t, err)
	ans := Extract("江江江", tx)
	require.Len(t, ans, 1)
	assert.Equal(t, 1, ans[0].Count)
}

func TestExtractSortsByCountStable(t *testing.T) {
	ans := Extract("月明星稀，月落乌啼霜满天。", taxonomy.Default())
	require.NotEmpty(t, ans)
	assert.Equal(t, "月", ans[0].Word)
	assert.Equal(t, 2, ans[0].Count)
	// remaining items follow the taxonomy order
	words := make([]string, 0, len(ans)-1)
	for _, m := range ans[1:] {
		words = append(words, m.Word)
	}
	assert.Equal(t, []string{"星", "天", "霜"}, words)
}

func TestExtractSameWordInTwoCategories(t *testing.T) {
	ans := Extract("心", taxonomy.Default())
	require.Len(t, ans, 2)
	assert.Equal(t, taxonomy.Category("情感象征"), ans[0].Category)
	assert.Equal(t, taxonomy.Category("身体"), ans[1].Category)
}

func TestExtractNothing(t *testing.T) {
	ans := Extract("", taxonomy.Default())
	assert.NotNil(t, ans)
	assert.Empty(t, ans)
}

func TestAccumulatorSumsDuplicateKeys(t *testing.T) {
	acc := newAccumulator()
	acc.add(Match{Word: "江", Category: "a", Count: 2, Tier: taxonomy.TierSingleChar})
	acc.add(Match{Word: "水", Category: "a", Count: 1, Tier: taxonomy.TierSingleChar})
	acc.add(Match{Word: "江", Category: "a", Count: 3, Tier: taxonomy.TierMultiChar})
	acc.add(Match{Word: "江", Category: "b", Count: 1, Tier: taxonomy.TierSingleChar})
	require.Len(t, acc.items, 3)
	assert.Equal(t, 5, acc.items[0].Count)
	assert.Equal(t, taxonomy.TierSingleChar, acc.items[0].Tier)
	assert.Equal(t, taxonomy.Category("b"), acc.items[2].Category)
}

func TestOverlapPolicyValidate(t *testing.T) {
	assert.NoError(t, OverlapKeep.Validate())
	assert.NoError(t, OverlapSubtract.Validate())
	assert.Error(t, OverlapPolicy("drop").Validate())
}

func TestTotalCount(t *testing.T) {
	assert.Equal(t, 4, TotalCount(Extract("江水江", riverTaxonomy(t))))
}
