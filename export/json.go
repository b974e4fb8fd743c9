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

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/fs"

	"poetics/merror"
	"poetics/results"
)

// WriteJSONFile stores the document as an indented JSON file.
// The file is first written to a temporary location so a failed
// export never leaves a truncated file behind.
func WriteJSONFile(path string, doc *results.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return merror.SourceError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if err := doc.WriteJSON(tmp); err != nil {
		tmp.Close()
		return merror.SourceError{Path: path, Err: fmt.Errorf("failed to encode document: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return merror.SourceError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return merror.SourceError{Path: path, Err: err}
	}
	return nil
}

// ReadJSONFile loads a document previously stored by WriteJSONFile.
func ReadJSONFile(path string) (*results.Document, error) {
	isFile, err := fs.IsFile(path)
	if err != nil {
		return nil, merror.SourceError{Path: path, Err: err}
	}
	if !isFile {
		return nil, merror.SourceError{Path: path, Err: os.ErrNotExist}
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, merror.SourceError{Path: path, Err: err}
	}
	var doc results.Document
	if err := json.Unmarshal(rawData, &doc); err != nil {
		return nil, merror.InputError{Msg: fmt.Sprintf("invalid document %s: %s", path, err)}
	}
	return &doc, nil
}
