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
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"poetics/corpus"
	"poetics/rdb"
	"poetics/results"
)

const (
	DefaultAnalysisCacheSize = 64
	DefaultMaxBodyBytes      = 4 * 1024 * 1024
	DefaultAnalyzeTimeout    = 60 * time.Second

	InProcessWorkerID = "api"
)

// analysisQueue is the part of the Redis adapter the handlers need
// to delegate analysis to workers.
type analysisQueue interface {
	PublishQuery(ctx context.Context, query rdb.Query) (<-chan *rdb.WorkerResult, error)
	CachedDocument(ctx context.Context, checksum string) ([]byte, bool, error)
	CacheDocument(ctx context.Context, checksum string, data []byte) error
}

type jobLogger interface {
	Log(rec results.JobLog)
}

type ActionsConf struct {
	CacheSize      int
	MaxBodyBytes   int64
	AnalyzeTimeout time.Duration
}

// Actions contains all the HTTP handlers of the imagery API.
// The preloaded document may be nil in which case only the
// taxonomy and analysis endpoints provide data. With nil queue,
// analyses run in-process. The logger is optional.
type Actions struct {
	doc      *results.Document
	analyzer *corpus.Analyzer
	queue    analysisQueue
	logger   jobLogger
	cache    *lru.Cache[string, *results.Document]
	conf     ActionsConf
}

func NewActions(
	doc *results.Document,
	analyzer *corpus.Analyzer,
	queue analysisQueue,
	logger jobLogger,
	conf ActionsConf,
) (*Actions, error) {
	if conf.CacheSize <= 0 {
		conf.CacheSize = DefaultAnalysisCacheSize
	}
	if conf.MaxBodyBytes <= 0 {
		conf.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if conf.AnalyzeTimeout <= 0 {
		conf.AnalyzeTimeout = DefaultAnalyzeTimeout
	}
	cache, err := lru.New[string, *results.Document](conf.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}
	return &Actions{
		doc:      doc,
		analyzer: analyzer,
		queue:    queue,
		logger:   logger,
		cache:    cache,
		conf:     conf,
	}, nil
}
