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
	"time"

	"github.com/bytedance/sonic"
)

// WorkerLoad summarizes jobs processed by one or more workers
// within a time span.
type WorkerLoad struct {
	NumJobs       int
	NumPoems      int
	TotalTimeSecs float64
	NumErrors     int
	FirstUpdate   time.Time
	LastUpdate    time.Time
	NumWorkers    int
}

func (wl WorkerLoad) TotalSpan() time.Duration {
	return wl.LastUpdate.Sub(wl.FirstUpdate)
}

func (wl WorkerLoad) AvgLoad() float64 {
	if wl.TotalTimeSecs == 0 || wl.NumWorkers == 0 || wl.TotalSpan() <= 0 {
		return 0
	}
	return wl.TotalTimeSecs / wl.TotalSpan().Seconds() / float64(wl.NumWorkers)
}

func (wl WorkerLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !wl.FirstUpdate.IsZero() {
		t0 = &wl.FirstUpdate
	}
	if !wl.LastUpdate.IsZero() {
		t1 = &wl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumJobs       int        `json:"numJobs"`
			NumPoems      int        `json:"numPoems"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			NumErrors     int        `json:"numErrors"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
			NumWorkers    int        `json:"numWorkers"`
			AvgLoad       float64    `json:"avgLoad"`
		}{
			NumJobs:       wl.NumJobs,
			NumPoems:      wl.NumPoems,
			TotalTimeSecs: wl.TotalTimeSecs,
			NumErrors:     wl.NumErrors,
			FirstUpdate:   t0,
			LastUpdate:    t1,
			NumWorkers:    wl.NumWorkers,
			AvgLoad:       wl.AvgLoad(),
		},
	)
}

// WorkersLoad maps worker IDs to their accumulated load
type WorkersLoad map[string]WorkerLoad

func (wl WorkersLoad) SumLoad() WorkerLoad {
	var ans WorkerLoad
	for _, v := range wl {
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumJobs += v.NumJobs
		ans.NumPoems += v.NumPoems
		ans.NumErrors += v.NumErrors
		ans.TotalTimeSecs += v.TotalTimeSecs
		ans.NumWorkers++
	}
	return ans
}

// cleanOldRecords removes workers which have not reported
// any job since the `before` time.
func (wl WorkersLoad) cleanOldRecords(before time.Time) {
	for k, v := range wl {
		if v.LastUpdate.Before(before) {
			delete(wl, k)
		}
	}
}
