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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/results"
)

type recordingWriter struct {
	records []results.JobLog
}

func (rw *recordingWriter) Write(rec results.JobLog) {
	rw.records = append(rw.records, rec)
}

func mkJobLog(workerID string, begin time.Time, dur time.Duration, numPoems int, err string) results.JobLog {
	return results.JobLog{
		WorkerID: workerID,
		Func:     "analyze",
		Begin:    begin,
		End:      begin.Add(dur),
		NumPoems: numPoems,
		Err:      err,
	}
}

func TestWorkerJobLoggerTotals(t *testing.T) {
	writer := &recordingWriter{}
	logger := NewWorkerJobLogger(writer, time.UTC)
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	logger.Log(mkJobLog("w1", t0, 2*time.Second, 10, ""))
	logger.Log(mkJobLog("w1", t0.Add(10*time.Second), 4*time.Second, 5, "failed"))
	logger.Log(mkJobLog("w2", t0.Add(5*time.Second), time.Second, 1, ""))

	assert.Len(t, writer.records, 3)

	w1, err := logger.TotalWorkerLoad("w1")
	require.NoError(t, err)
	assert.Equal(t, 2, w1.NumJobs)
	assert.Equal(t, 15, w1.NumPoems)
	assert.Equal(t, 1, w1.NumErrors)
	assert.InDelta(t, 6.0, w1.TotalTimeSecs, 0.0001)
	assert.Equal(t, t0, w1.FirstUpdate)
	assert.Equal(t, t0.Add(14*time.Second), w1.LastUpdate)

	total := logger.TotalLoad()
	assert.Equal(t, 3, total.NumJobs)
	assert.Equal(t, 2, total.NumWorkers)
	assert.Equal(t, 16, total.NumPoems)

	_, err = logger.TotalWorkerLoad("w3")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestWorkerJobLoggerRecent(t *testing.T) {
	logger := NewWorkerJobLogger(nil, nil)
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	logger.Log(mkJobLog("w1", t0, time.Second, 1, ""))
	logger.Log(mkJobLog("w2", t0.Add(time.Second), time.Second, 2, ""))

	recent := logger.RecentLoad()
	assert.Equal(t, 2, recent.NumJobs)
	assert.Equal(t, 2, recent.NumWorkers)
	assert.Equal(t, t0, recent.FirstUpdate)

	records := logger.RecentRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "w1", records[0].WorkerID)

	w2, err := logger.RecentWorkerLoad("w2")
	require.NoError(t, err)
	assert.Equal(t, 1, w2.NumJobs)
	assert.Equal(t, 2, w2.NumPoems)

	_, err = logger.RecentWorkerLoad("w9")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestWorkerJobLoggerCleanup(t *testing.T) {
	logger := NewWorkerJobLogger(nil, time.UTC)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	logger.Log(mkJobLog("old", now.Add(-48*time.Hour), time.Second, 1, ""))
	logger.Log(mkJobLog("fresh", now.Add(-time.Hour), time.Second, 1, ""))
	logger.cleanup(now)

	_, err := logger.TotalWorkerLoad("old")
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	_, err = logger.TotalWorkerLoad("fresh")
	assert.NoError(t, err)
}

func TestWorkerLoadAvgLoad(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	wl := WorkerLoad{
		TotalTimeSecs: 5,
		FirstUpdate:   t0,
		LastUpdate:    t0.Add(10 * time.Second),
		NumWorkers:    1,
	}
	assert.InDelta(t, 0.5, wl.AvgLoad(), 0.0001)
	assert.Equal(t, 0.0, WorkerLoad{}.AvgLoad())
}

func TestWorkerLoadMarshalJSON(t *testing.T) {
	data, err := json.Marshal(WorkerLoad{NumJobs: 3, NumWorkers: 1})
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3.0, decoded["numJobs"])
	assert.NotContains(t, decoded, "firstUpdate")
	assert.Contains(t, decoded, "avgLoad")
}
