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

package merror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceErrorUnwrap(t *testing.T) {
	err := SourceError{Path: "/tmp/poems.txt", Err: os.ErrNotExist}
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "/tmp/poems.txt")
}

func TestIsInputError(t *testing.T) {
	err := fmt.Errorf("failed to load taxonomy: %w", InputError{Msg: "empty category"})
	assert.True(t, IsInputError(err))
	assert.False(t, IsInputError(InternalError{Msg: "foo"}))
}

func TestPanicValueToErr(t *testing.T) {
	assert.EqualError(t, PanicValueToErr("boom"), "recovered panic: boom")
	assert.EqualError(t, PanicValueToErr(42), "recovered panic from an error of type int")
	cause := errors.New("cause")
	assert.True(t, errors.Is(PanicValueToErr(cause), cause))
}
