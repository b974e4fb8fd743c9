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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"poetics/corpus"
	"poetics/merror"
	"poetics/rdb"
	"poetics/results"
)

// analysisKey identifies an analysis by its input text and
// the author metadata attached to it.
func analysisKey(text, author, dynasty string) string {
	return results.Checksum(strings.Join([]string{text, author, dynasty}, "\x00"))
}

func (a *Actions) readAnalyzeBody(ctx *gin.Context) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, a.conf.MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			uniresp.RespondWithErrorJSON(
				ctx,
				fmt.Errorf("request body too large (max %d bytes)", mbe.Limit),
				http.StatusRequestEntityTooLarge,
			)
			return "", false
		}
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("failed to read request body: %w", err),
			http.StatusBadRequest,
		)
		return "", false
	}
	return string(body), true
}

// analyzeViaQueue delegates the analysis to a worker. Documents produced
// by workers are shared among API instances through the Redis cache.
// The returned job log is nil for documents found in the cache.
func (a *Actions) analyzeViaQueue(
	ctx context.Context,
	key string,
	args rdb.AnalyzeArgs,
) (*results.Document, *results.JobLog, error) {
	cached, ok, err := a.queue.CachedDocument(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read Redis document cache, ignoring")

	} else if ok {
		var doc results.Document
		decErr := json.Unmarshal(cached, &doc)
		if decErr == nil {
			return &doc, nil, nil
		}
		log.Warn().Err(decErr).Str("key", key).Msg("invalid cached document, ignoring")
	}
	query, err := rdb.NewAnalyzeQuery(args)
	if err != nil {
		return nil, nil, err
	}
	wait, err := a.queue.PublishQuery(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to publish analysis: %w", err)
	}
	rawResult, ok := <-wait
	if !ok {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("failed to wait for analysis: %w", ctx.Err())
		}
		return nil, nil, errors.New("analysis result channel closed")
	}
	jobLog := &results.JobLog{
		WorkerID: rawResult.WorkerID,
		Func:     rdb.FuncAnalyze,
		Begin:    rawResult.ProcBegin,
		End:      rawResult.ProcEnd,
		Err:      rawResult.Error,
	}
	var doc results.Document
	if err := rawResult.DecodeValue(rdb.ResultTypeDocument, &doc); err != nil {
		return nil, jobLog, err
	}
	jobLog.NumPoems = doc.Metadata.TotalPoems
	if err := a.queue.CacheDocument(ctx, key, rawResult.Value); err != nil {
		log.Warn().Err(err).Msg("failed to store document in Redis cache")
	}
	return &doc, jobLog, nil
}

func (a *Actions) analyzeInProcess(
	ctx context.Context,
	args corpus.AnalyzeArgs,
) (*results.Document, *results.JobLog, error) {
	jobLog := &results.JobLog{
		WorkerID: InProcessWorkerID,
		Func:     rdb.FuncAnalyze,
		Begin:    time.Now(),
	}
	doc, err := a.analyzer.Analyze(ctx, args)
	jobLog.End = time.Now()
	if err != nil {
		jobLog.Err = err.Error()
		return nil, jobLog, err
	}
	jobLog.NumPoems = doc.Metadata.TotalPoems
	return doc, jobLog, nil
}

func (a *Actions) Analyze(ctx *gin.Context) {
	text, ok := a.readAnalyzeBody(ctx)
	if !ok {
		return
	}
	author := ctx.Query("author")
	dynasty := ctx.Query("dynasty")
	key := analysisKey(text, author, dynasty)
	if doc, ok := a.cache.Get(key); ok {
		log.Debug().Str("key", key).Msg("analysis found in cache")
		uniresp.WriteJSONResponse(ctx.Writer, doc)
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), a.conf.AnalyzeTimeout)
	defer cancel()
	var doc *results.Document
	var jobLog *results.JobLog
	var err error
	if a.queue != nil {
		doc, jobLog, err = a.analyzeViaQueue(
			reqCtx,
			key,
			rdb.AnalyzeArgs{
				Text:    text,
				Author:  author,
				Dynasty: dynasty,
			},
		)

	} else {
		doc, jobLog, err = a.analyzeInProcess(
			reqCtx,
			corpus.AnalyzeArgs{
				Text:    text,
				Author:  author,
				Dynasty: dynasty,
			},
		)
	}
	if jobLog != nil && a.logger != nil {
		a.logger.Log(*jobLog)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if merror.IsInputError(err) {
			status = http.StatusBadRequest

		} else if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		uniresp.RespondWithErrorJSON(ctx, err, status)
		return
	}
	a.cache.Add(key, doc)
	uniresp.WriteJSONResponse(ctx.Writer, doc)
}
