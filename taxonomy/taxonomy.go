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
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"poetics/merror"
)

// Category is a semantic group of imagery terms
// (e.g. 自然景观, 植物).
type Category string

func (c Category) String() string {
	return string(c)
}

// Tier distinguishes single-character terms from
// multi-character ones. The values are kept compatible
// with the JSON documents produced by earlier tooling.
type Tier string

const (
	TierSingleChar Tier = "single_char"
	TierMultiChar  Tier = "double_char"
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) Validate() error {
	if t != TierSingleChar && t != TierMultiChar {
		return merror.InputError{Msg: fmt.Sprintf("unknown tier %s", t)}
	}
	return nil
}

// CategoryTerms is an ordered set of terms belonging
// to a single category.
type CategoryTerms struct {
	Category Category `json:"category" yaml:"category"`
	Terms    []string `json:"terms" yaml:"terms"`
}

// Document is the serializable form of a taxonomy.
type Document struct {
	SingleChar []CategoryTerms `json:"singleChar" yaml:"singleChar"`
	MultiChar  []CategoryTerms `json:"multiChar" yaml:"multiChar"`
}

// Taxonomy is a two-tier keyword taxonomy. Once created, it
// cannot be changed so it is safe to share it among goroutines.
type Taxonomy struct {
	singleChar []CategoryTerms
	multiChar  []CategoryTerms
}

func copyTier(src []CategoryTerms) []CategoryTerms {
	ans := make([]CategoryTerms, len(src))
	for i, ct := range src {
		ans[i] = CategoryTerms{
			Category: ct.Category,
			Terms:    append([]string(nil), ct.Terms...),
		}
	}
	return ans
}

func validateTier(tier Tier, items []CategoryTerms) error {
	usedCats := make(map[Category]bool)
	for _, ct := range items {
		if ct.Category == "" {
			return merror.InputError{Msg: fmt.Sprintf("empty category name in tier %s", tier)}
		}
		if usedCats[ct.Category] {
			return merror.InputError{
				Msg: fmt.Sprintf("duplicate category %s in tier %s", ct.Category, tier)}
		}
		usedCats[ct.Category] = true
		usedTerms := make(map[string]bool)
		for _, term := range ct.Terms {
			size := utf8.RuneCountInString(term)
			if tier == TierSingleChar && size != 1 {
				return merror.InputError{
					Msg: fmt.Sprintf("term `%s` in %s must be a single character", term, ct.Category)}

			} else if tier == TierMultiChar && size < 2 {
				return merror.InputError{
					Msg: fmt.Sprintf("term `%s` in %s must have at least two characters", term, ct.Category)}
			}
			if usedTerms[term] {
				return merror.InputError{
					Msg: fmt.Sprintf("duplicate term `%s` in %s", term, ct.Category)}
			}
			usedTerms[term] = true
		}
	}
	return nil
}

// New validates both tiers and creates a taxonomy with
// its own copy of the data.
func New(singleChar, multiChar []CategoryTerms) (*Taxonomy, error) {
	if err := validateTier(TierSingleChar, singleChar); err != nil {
		return nil, err
	}
	if err := validateTier(TierMultiChar, multiChar); err != nil {
		return nil, err
	}
	return &Taxonomy{
		singleChar: copyTier(singleChar),
		multiChar:  copyTier(multiChar),
	}, nil
}

func FromDocument(doc Document) (*Taxonomy, error) {
	return New(doc.SingleChar, doc.MultiChar)
}

func (t *Taxonomy) tier(tier Tier) []CategoryTerms {
	if tier == TierMultiChar {
		return t.multiChar
	}
	return t.singleChar
}

// Each calls fn for every term of the tier, categories and
// terms in their defined order.
func (t *Taxonomy) Each(tier Tier, fn func(cat Category, term string)) {
	for _, ct := range t.tier(tier) {
		for _, term := range ct.Terms {
			fn(ct.Category, term)
		}
	}
}

// Tier returns a copy of the tier's data.
func (t *Taxonomy) Tier(tier Tier) []CategoryTerms {
	return copyTier(t.tier(tier))
}

func (t *Taxonomy) NumTerms(tier Tier) int {
	var ans int
	for _, ct := range t.tier(tier) {
		ans += len(ct.Terms)
	}
	return ans
}

// Categories lists all the categories of both tiers
// in the order of their first appearance.
func (t *Taxonomy) Categories() []Category {
	seen := make(map[Category]bool)
	ans := make([]Category, 0, len(t.singleChar)+len(t.multiChar))
	for _, items := range [][]CategoryTerms{t.singleChar, t.multiChar} {
		for _, ct := range items {
			if !seen[ct.Category] {
				seen[ct.Category] = true
				ans = append(ans, ct.Category)
			}
		}
	}
	return ans
}

func (t *Taxonomy) Document() Document {
	return Document{
		SingleChar: t.Tier(TierSingleChar),
		MultiChar:  t.Tier(TierMultiChar),
	}
}

func (t *Taxonomy) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Document())
}
