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


package monitoring

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	"poetics/results"
)

const (
	StaleWorkerLoadTTL = time.Hour * 24
	tickerInterval     = 60 * time.Second
	recentLogSize      = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// StatusWriter stores job records in an external storage
type StatusWriter interface {
	Write(rec results.JobLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec results.JobLog) {}

// WorkerJobLogger keeps track of analysis jobs and the load of the workers
// processing them. Each record is also logged and passed to a StatusWriter.
type WorkerJobLogger struct {
	loadData     WorkersLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[results.JobLog]
	tz           *time.Location
	statusWriter StatusWriter
	done         chan struct{}
}

func (w *WorkerJobLogger) Log(rec results.JobLog) {
	evt := log.Info()
	if rec.Err != "" {
		evt = log.Warn().Str("error", rec.Err)
	}
	evt.
		Str("workerId", rec.WorkerID).
		Str("func", rec.Func).
		Int("numPoems", rec.NumPoems).
		Dur("procTime", rec.Duration()).
		Msg("job finished")

	w.dataLock.Lock()
	entry, ok := w.loadData[rec.WorkerID]
	if !ok {
		entry.FirstUpdate = rec.Begin
		entry.NumWorkers = 1
	}
	entry.NumJobs++
	entry.NumPoems += rec.NumPoems
	entry.LastUpdate = rec.End
	if rec.Err != "" {
		entry.NumErrors++
	}
	entry.TotalTimeSecs += rec.Duration().Seconds()
	w.loadData[rec.WorkerID] = entry
	w.recentLog.Append(rec)
	w.dataLock.Unlock()

	w.statusWriter.Write(rec)
}

func (w *WorkerJobLogger) TotalLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad()
}

func (w *WorkerJobLogger) RecentLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		workers.Add(item.WorkerID)
		if i == 0 {
			ans.FirstUpdate = item.Begin
		}
		ans.LastUpdate = item.End
		if item.Err != "" {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.NumPoems += item.NumPoems
		ans.TotalTimeSecs += item.Duration().Seconds()
		return true
	})
	ans.NumWorkers = workers.Size()
	return ans
}

func (w *WorkerJobLogger) RecentRecords() []results.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]results.JobLog, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		ans[i] = item
		return true
	})
	return ans
}

func (w *WorkerJobLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[workerID]
	if !ok {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

func (w *WorkerJobLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	var found bool
	w.recentLog.ForEach(func(i int, item results.JobLog) bool {
		if item.WorkerID != workerID {
			return true
		}
		if !found {
			ans.FirstUpdate = item.Begin
			found = true
		}
		ans.LastUpdate = item.End
		if item.Err != "" {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.NumPoems += item.NumPoems
		ans.TotalTimeSecs += item.Duration().Seconds()
		return true
	})
	if found {
		ans.NumWorkers = 1
		return ans, nil
	}
	return ans, ErrWorkerNotFound
}

func (w *WorkerJobLogger) cleanup(now time.Time) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()
	w.loadData.cleanOldRecords(now.Add(-StaleWorkerLoadTTL))
}

func (w *WorkerJobLogger) Start(ctx context.Context) {
	log.Info().Msg("starting worker job logger")
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requesting worker job logger stop")
				return
			case <-ticker.C:
				w.cleanup(time.Now().In(w.tz))
				load := w.RecentLoad()
				if load.NumJobs > 0 {
					log.Debug().
						Int("numJobs", load.NumJobs).
						Int("numErrors", load.NumErrors).
						Float64("avgLoad", load.AvgLoad()).
						Msg("recent workers load")
				}
			}
		}
	}()
}

func (w *WorkerJobLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down worker job logger")
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewWorkerJobLogger(
	statusWriter StatusWriter,
	tz *time.Location,
) *WorkerJobLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	if tz == nil {
		tz = time.Local
	}
	return &WorkerJobLogger{
		loadData:     make(WorkersLoad),
		recentLog:    collections.NewCircularList[results.JobLog](recentLogSize),
		statusWriter: statusWriter,
		tz:           tz,
		done:         make(chan struct{}),
	}
}
