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

package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/fs"
	"gopkg.in/yaml.v3"

	"poetics/merror"
)

// LoadFile loads a taxonomy document stored either as JSON
// or as YAML (decided by the file suffix).
func LoadFile(path string) (*Taxonomy, error) {
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
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(rawData, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(rawData, &doc)
	default:
		return nil, merror.InputError{
			Msg: fmt.Sprintf("unsupported taxonomy file type: %s", filepath.Ext(path))}
	}
	if err != nil {
		return nil, merror.InputError{Msg: fmt.Sprintf("failed to parse taxonomy %s: %s", path, err)}
	}
	return FromDocument(doc)
}

// LoadOrDefault returns the built-in taxonomy in case
// no path is provided.
func LoadOrDefault(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
