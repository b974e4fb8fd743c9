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

package rdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poetics/merror"
)

const (
	ResultTypeDocument ResultType = "document"
	ResultTypeError    ResultType = "error"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

// WorkerResult is a value passed from a worker back
// to the API server.
type WorkerResult struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"workerId,omitempty"`
	ResultType   ResultType      `json:"resultType"`
	Value        json.RawMessage `json:"value,omitempty"`
	Error        string          `json:"error,omitempty"`
	HasUserError bool            `json:"hasUserError"`
	ProcBegin    time.Time       `json:"procBegin"`
	ProcEnd      time.Time       `json:"procEnd"`
}

func (wr *WorkerResult) Err() error {
	if wr.Error == "" {
		return nil
	}
	if wr.HasUserError {
		return merror.InputError{Msg: wr.Error}
	}
	return errors.New(wr.Error)
}

// DecodeValue unmarshals the attached value into the target. In case
// the result holds an error or a value of a different type, error
// is returned.
func (wr *WorkerResult) DecodeValue(rt ResultType, target any) error {
	if err := wr.Err(); err != nil {
		return err
	}
	if wr.ResultType != rt {
		return fmt.Errorf("unexpected result type %s (expected %s)", wr.ResultType, rt)
	}
	if err := json.Unmarshal(wr.Value, target); err != nil {
		return fmt.Errorf("failed to decode worker result: %w", err)
	}
	return nil
}

func CreateWorkerResult(rt ResultType, value any) (*WorkerResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize worker result: %w", err)
	}
	return &WorkerResult{
		ResultType: rt,
		Value:      data,
	}, nil
}

func CreateErrorResult(err error) *WorkerResult {
	return &WorkerResult{
		ResultType:   ResultTypeError,
		Error:        err.Error(),
		HasUserError: merror.IsInputError(err),
	}
}
