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

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/cnf"
	"poetics/corpus/handlers"
	"poetics/monitoring"
	"poetics/rdb"
	"poetics/results"
	"poetics/worker"
)

// memoryQueue connects the analyze handler with a worker
// in the same way the Redis adapter does.
type memoryQueue struct {
	lock    sync.Mutex
	queries []rdb.Query
	waiting map[string]chan *rdb.WorkerResult
	notify  chan *redis.Message
}

func (q *memoryQueue) PublishQuery(ctx context.Context, query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	ans := make(chan *rdb.WorkerResult, 1)
	q.lock.Lock()
	query.Channel = fmt.Sprintf("res:%d", len(q.waiting))
	q.waiting[query.Channel] = ans
	q.queries = append(q.queries, query)
	q.lock.Unlock()
	q.notify <- &redis.Message{Payload: rdb.MsgNewQuery}
	return ans, nil
}

func (q *memoryQueue) CachedDocument(ctx context.Context, checksum string) ([]byte, bool, error) {
	return nil, false, nil
}

func (q *memoryQueue) CacheDocument(ctx context.Context, checksum string, data []byte) error {
	return nil
}

func (q *memoryQueue) DequeueQuery() (rdb.Query, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.queries) == 0 {
		return rdb.Query{}, rdb.ErrorEmptyQueue
	}
	ans := q.queries[0]
	q.queries = q.queries[1:]
	return ans, nil
}

func (q *memoryQueue) SomeoneListens(query rdb.Query) (bool, error) {
	return true, nil
}

func (q *memoryQueue) PublishResult(channelName string, value *rdb.WorkerResult) error {
	q.lock.Lock()
	ch, ok := q.waiting[channelName]
	q.lock.Unlock()
	if !ok {
		return fmt.Errorf("unknown channel %s", channelName)
	}
	ch <- value
	return nil
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{
		waiting: make(map[string]chan *rdb.WorkerResult),
		notify:  make(chan *redis.Message, 1),
	}
}

type recordingStatusWriter struct {
	lock    sync.Mutex
	records []results.JobLog
}

func (w *recordingStatusWriter) Write(rec results.JobLog) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.records = append(w.records, rec)
}

func (w *recordingStatusWriter) Records() []results.JobLog {
	w.lock.Lock()
	defer w.lock.Unlock()
	return append([]results.JobLog{}, w.records...)
}

func TestQueuedAnalysisStoredOnce(t *testing.T) {
	conf := &cnf.Conf{Monitoring: &monitoring.Conf{}}
	queue := newMemoryQueue()

	workerLogger := newWorkerJobLogger(conf)
	wrk := worker.NewWorker("w1", queue, queue.notify, testAnalyzer(), workerLogger)
	ctx, cancel := context.WithCancel(context.Background())
	wrk.Start(ctx)
	defer func() {
		cancel()
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		assert.NoError(t, wrk.Stop(stopCtx))
	}()

	apiWriter := &recordingStatusWriter{}
	apiLogger := monitoring.NewWorkerJobLogger(apiWriter, time.UTC)
	actions, err := handlers.NewActions(
		nil, testAnalyzer(), queue, apiLogger, handlers.ActionsConf{AnalyzeTimeout: 10 * time.Second})
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/analyze", actions.Analyze)

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(testSource))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored := apiWriter.Records()
	require.Len(t, stored, 1)
	assert.Equal(t, "w1", stored[0].WorkerID)
	assert.Equal(t, 1, stored[0].NumPoems)

	assert.Equal(t, 1, workerLogger.TotalLoad().NumJobs)
	assert.Equal(t, 1, apiLogger.TotalLoad().NumJobs)
}
