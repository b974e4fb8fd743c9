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


package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"poetics/results"
	"poetics/taxonomy"
)

const (
	DefaultPoemsPageSize = 50
	MaxPoemsPageSize     = 500
)

var (
	ErrNoCorpus = errors.New("no corpus loaded")
)

type indexedPoem struct {
	Index int `json:"index"`
	results.Poem
}

type poemsResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Word   string        `json:"word,omitempty"`
	Poems  []indexedPoem `json:"poems"`
}

type taxonomyResponse struct {
	taxonomy.Document
	Categories []taxonomy.Category `json:"categories"`
}

type wordCloudResponse struct {
	Items []*results.WordCloudItem `json:"items"`
}

func (a *Actions) requireDocument(ctx *gin.Context) bool {
	if a.doc == nil {
		uniresp.RespondWithErrorJSON(ctx, ErrNoCorpus, http.StatusNotFound)
		return false
	}
	return true
}

func (a *Actions) Taxonomy(ctx *gin.Context) {
	tx := a.analyzer.Taxonomy()
	uniresp.WriteJSONResponse(
		ctx.Writer,
		taxonomyResponse{Document: tx.Document(), Categories: tx.Categories()},
	)
}

func (a *Actions) Imagery(ctx *gin.Context) {
	if !a.requireDocument(ctx) {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, a.doc)
}

func (a *Actions) Stats(ctx *gin.Context) {
	if !a.requireDocument(ctx) {
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		results.Summarize(a.doc.Metadata.TotalPoems, a.doc.ImageryStatistics),
	)
}

func (a *Actions) WordCloud(ctx *gin.Context) {
	if !a.requireDocument(ctx) {
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", results.DefaultWordCloudSize)
	if !ok {
		return
	}
	if limit <= 0 {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("limit must be a positive number"),
			http.StatusBadRequest,
		)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		wordCloudResponse{Items: results.WordCloud(a.doc.Poems, limit)},
	)
}

func (a *Actions) Poems(ctx *gin.Context) {
	if !a.requireDocument(ctx) {
		return
	}
	offset, ok := unireq.GetURLIntArgOrFail(ctx, "offset", 0)
	if !ok {
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", DefaultPoemsPageSize)
	if !ok {
		return
	}
	if offset < 0 || limit <= 0 || limit > MaxPoemsPageSize {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("invalid page (offset must be >= 0, limit between 1 and %d)", MaxPoemsPageSize),
			http.StatusBadRequest,
		)
		return
	}
	word := ctx.Query("word")
	filtered := make([]indexedPoem, 0, len(a.doc.Poems))
	for i, p := range a.doc.Poems {
		if word == "" || p.HasWord(word) {
			filtered = append(filtered, indexedPoem{Index: i, Poem: p})
		}
	}
	ans := poemsResponse{
		Total:  len(filtered),
		Offset: offset,
		Limit:  limit,
		Word:   word,
		Poems:  []indexedPoem{},
	}
	if offset < len(filtered) {
		ans.Poems = filtered[offset:min(offset+limit, len(filtered))]
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) Poem(ctx *gin.Context) {
	if !a.requireDocument(ctx) {
		return
	}
	idx, err := strconv.Atoi(ctx.Param("idx"))
	if err != nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("invalid poem index: %w", err),
			http.StatusBadRequest,
		)
		return
	}
	if idx < 0 || idx >= len(a.doc.Poems) {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("poem %d not found", idx),
			http.StatusNotFound,
		)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, indexedPoem{Index: idx, Poem: a.doc.Poems[idx]})
}
