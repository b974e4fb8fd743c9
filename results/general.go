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

package results

import (
	"encoding/hex"
	"encoding/json"
	"math"
	"time"

	"github.com/zeebo/blake3"
)

// JobLog describes a single job processed by a worker.
type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	NumPoems int       `json:"numPoems"`
	Err      string    `json:"error,omitempty"`
}

func (jl *JobLog) ToJSON() (string, error) {
	ans, err := json.Marshal(jl)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

func (jl *JobLog) Duration() time.Duration {
	return jl.End.Sub(jl.Begin)
}

// NormRound performs a normalized rounding to
// the three decimal places so we can provide
// consistent rounding across all the results
func NormRound(val float64) float64 {
	return math.Round(val*1000) / 1000
}

// Checksum returns a hex-encoded BLAKE3 digest of the text.
func Checksum(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
