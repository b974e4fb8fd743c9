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

package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/merror"
)

func TestDefaultTaxonomy(t *testing.T) {
	tx := Default()
	assert.Equal(t, 171, tx.NumTerms(TierSingleChar))
	assert.Equal(t, 42, tx.NumTerms(TierMultiChar))
	cats := tx.Categories()
	assert.Len(t, cats, 9)
	assert.Equal(t, Category("自然景观"), cats[0])
	assert.Equal(t, Category("身体"), cats[8])
}

func TestEachKeepsOrder(t *testing.T) {
	tx, err := New(
		[]CategoryTerms{
			{Category: "b", Terms: []string{"山", "水"}},
			{Category: "a", Terms: []string{"月"}},
		},
		nil,
	)
	require.NoError(t, err)
	var visited []string
	tx.Each(TierSingleChar, func(cat Category, term string) {
		visited = append(visited, cat.String()+":"+term)
	})
	assert.Equal(t, []string{"b:山", "b:水", "a:月"}, visited)
}

func TestNewCopiesInput(t *testing.T) {
	src := []CategoryTerms{{Category: "植物", Terms: []string{"花"}}}
	tx, err := New(src, nil)
	require.NoError(t, err)
	src[0].Terms[0] = "草"
	assert.Equal(t, "花", tx.Tier(TierSingleChar)[0].Terms[0])
}

func TestNewValidation(t *testing.T) {
	_, err := New([]CategoryTerms{{Category: "植物", Terms: []string{"花草"}}}, nil)
	assert.True(t, merror.IsInputError(err))

	_, err = New(nil, []CategoryTerms{{Category: "植物", Terms: []string{"花"}}})
	assert.True(t, merror.IsInputError(err))

	_, err = New([]CategoryTerms{{Category: "", Terms: []string{"花"}}}, nil)
	assert.True(t, merror.IsInputError(err))

	_, err = New([]CategoryTerms{{Category: "植物", Terms: []string{"花", "花"}}}, nil)
	assert.True(t, merror.IsInputError(err))

	_, err = New(
		[]CategoryTerms{
			{Category: "植物", Terms: []string{"花"}},
			{Category: "植物", Terms: []string{"草"}},
		},
		nil,
	)
	assert.True(t, merror.IsInputError(err))
}

func TestSameTermInTwoCategories(t *testing.T) {
	_, err := New(
		[]CategoryTerms{
			{Category: "情感象征", Terms: []string{"心"}},
			{Category: "身体", Terms: []string{"心"}},
		},
		nil,
	)
	assert.NoError(t, err)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	data := `
singleChar:
  - category: 自然景观
    terms: [山, 水]
multiChar:
  - category: 自然景观
    terms: [江湖]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	tx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.NumTerms(TierSingleChar))
	assert.Equal(t, 1, tx.NumTerms(TierMultiChar))
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	data := `{"singleChar": [{"category": "植物", "terms": ["花", "草"]}], "multiChar": []}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	tx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Category{"植物"}, tx.Categories())
}

func TestLoadFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0644))
	_, err := LoadFile(path)
	assert.True(t, merror.IsInputError(err))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nothing.json"))
	var srcErr merror.SourceError
	assert.True(t, errors.As(err, &srcErr))
}

func TestLoadOrDefault(t *testing.T) {
	tx, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().NumTerms(TierSingleChar), tx.NumTerms(TierSingleChar))
}
