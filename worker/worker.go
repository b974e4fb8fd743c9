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

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"poetics/corpus"
	"poetics/merror"
	"poetics/rdb"
	"poetics/results"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

type jobLogger interface {
	Log(rec results.JobLog)
}

type jobQueue interface {
	DequeueQuery() (rdb.Query, error)
	SomeoneListens(query rdb.Query) (bool, error)
	PublishResult(channelName string, value *rdb.WorkerResult) error
}

type recoveredError struct {
	error
}

type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	queue      jobQueue
	analyzer   *corpus.Analyzer
	ticker     *time.Ticker
	jobLogger  jobLogger
	currJobLog *results.JobLog
	done       chan struct{}
}

func (w *Worker) publishResult(res *rdb.WorkerResult, channel string) error {
	if w.currJobLog != nil {
		w.currJobLog.End = time.Now()
		if err := res.Err(); err != nil {
			w.currJobLog.Err = err.Error()
		}
		res.ProcBegin = w.currJobLog.Begin
		res.ProcEnd = w.currJobLog.End
		w.jobLogger.Log(*w.currJobLog)
		w.currJobLog = nil
	}
	res.ID = channel
	res.WorkerID = w.ID
	return w.queue.PublishResult(channel, res)
}

func (w *Worker) runQueryProtected(ctx context.Context, query rdb.Query) (ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = recoveredError{merror.PanicValueToErr(r)}
			return
		}
	}()
	var ans *rdb.WorkerResult
	switch query.Func {
	case rdb.FuncAnalyze:
		var args rdb.AnalyzeArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			ans = rdb.CreateErrorResult(
				merror.InputError{Msg: fmt.Sprintf("invalid analyze arguments: %s", err)})

		} else {
			ans = w.analyze(ctx, args)
		}
	default:
		ans = rdb.CreateErrorResult(
			merror.InputError{Msg: fmt.Sprintf("unknown query function: %s", query.Func)})
	}
	return w.publishResult(ans, query.Channel)
}

func (w *Worker) tryNextQuery(ctx context.Context) error {
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.queue.DequeueQuery()
	if err == rdb.ErrorEmptyQueue {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.queue.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &results.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}

	err = w.runQueryProtected(ctx, query)
	var rcvErr recoveredError
	if errors.As(err, &rcvErr) {
		ans := rdb.CreateErrorResult(fmt.Errorf("worker panicked: %w", rcvErr.error))
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
		return nil
	}
	return err
}

func (w *Worker) listen(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-w.ticker.C:
			if err := w.tryNextQuery(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process query")
			}
		case <-ctx.Done():
			log.Info().Msg("worker exiting")
			return
		case msg, ok := <-w.messages:
			if !ok {
				log.Warn().Msg("query notification channel closed, worker exiting")
				return
			}
			if msg.Payload == rdb.MsgNewQuery {
				if err := w.tryNextQuery(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			}
		}
	}
}

func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("workerId", w.ID).Msg("starting worker")
	go w.listen(ctx)
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s did not finish in time: %w", w.ID, ctx.Err())
	}
}

func NewWorker(
	workerID string,
	queue jobQueue,
	messages <-chan *redis.Message,
	analyzer *corpus.Analyzer,
	jobLogger jobLogger,
) *Worker {
	return &Worker{
		ID:        workerID,
		queue:     queue,
		messages:  messages,
		analyzer:  analyzer,
		ticker:    time.NewTicker(DefaultTickerInterval),
		jobLogger: jobLogger,
		done:      make(chan struct{}),
	}
}
