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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/merror"
)

func TestAnalyzeQueryEncoding(t *testing.T) {
	q, err := NewAnalyzeQuery(AnalyzeArgs{Text: "春望\n国破山河在。", Author: "杜甫"})
	require.NoError(t, err)
	q.Channel = "poeticsResults:1"
	raw, err := q.ToJSON()
	require.NoError(t, err)

	decoded, err := DecodeQuery(raw)
	require.NoError(t, err)
	assert.Equal(t, FuncAnalyze, decoded.Func)
	assert.Equal(t, "poeticsResults:1", decoded.Channel)
	var args AnalyzeArgs
	require.NoError(t, json.Unmarshal(decoded.Args, &args))
	assert.Equal(t, "春望\n国破山河在。", args.Text)
	assert.Equal(t, "杜甫", args.Author)
}

func TestDecodeQueryInvalid(t *testing.T) {
	_, err := DecodeQuery("{")
	assert.Error(t, err)
}

func TestWorkerResultDecodeValue(t *testing.T) {
	wr, err := CreateWorkerResult(ResultTypeDocument, map[string]int{"total": 3})
	require.NoError(t, err)
	var v map[string]int
	require.NoError(t, wr.DecodeValue(ResultTypeDocument, &v))
	assert.Equal(t, 3, v["total"])
	assert.Error(t, wr.DecodeValue(ResultTypeError, &v))
}

func TestErrorResult(t *testing.T) {
	wr := CreateErrorResult(merror.InputError{Msg: "empty text"})
	assert.True(t, wr.HasUserError)
	assert.True(t, merror.IsInputError(wr.Err()))

	wr = CreateErrorResult(errors.New("boom"))
	assert.False(t, wr.HasUserError)
	assert.EqualError(t, wr.Err(), "boom")
	var v any
	assert.EqualError(t, wr.DecodeValue(ResultTypeDocument, &v), "boom")
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{Host: "localhost"}
	require.NoError(t, conf.ValidateAndDefaults())
	assert.Equal(t, 6379, conf.Port)
	assert.Zero(t, conf.ResultCacheTTL())

	assert.Error(t, (&Conf{}).ValidateAndDefaults())
	assert.Error(t, (&Conf{Host: "x", ResultCacheTTLSecs: -1}).ValidateAndDefaults())
}

func TestDocumentCacheKey(t *testing.T) {
	assert.Equal(t, "poeticsDocument:abc", DocumentCacheKey("abc"))
}
