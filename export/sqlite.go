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
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"poetics/merror"
	"poetics/results"
)

const (
	driverName = "sqlite"
)

var schema = []string{
	`DROP TABLE IF EXISTS imagery`,
	`DROP TABLE IF EXISTS poems`,
	`DROP TABLE IF EXISTS word_frequency`,
	`DROP TABLE IF EXISTS category_frequency`,
	`DROP TABLE IF EXISTS single_char_frequency`,
	`DROP TABLE IF EXISTS metadata`,
	`CREATE TABLE metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE poems (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author TEXT NOT NULL,
		dynasty TEXT NOT NULL
	)`,
	`CREATE TABLE imagery (
		poem_id INTEGER NOT NULL REFERENCES poems(id),
		word TEXT NOT NULL,
		category TEXT NOT NULL,
		count INTEGER NOT NULL,
		tier TEXT NOT NULL,
		PRIMARY KEY (poem_id, word, category)
	)`,
	`CREATE INDEX imagery_word_idx ON imagery(word)`,
	`CREATE TABLE word_frequency (
		rank INTEGER PRIMARY KEY,
		word TEXT NOT NULL,
		freq INTEGER NOT NULL
	)`,
	`CREATE TABLE category_frequency (
		rank INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		freq INTEGER NOT NULL
	)`,
	`CREATE TABLE single_char_frequency (
		rank INTEGER PRIMARY KEY,
		word TEXT NOT NULL,
		freq INTEGER NOT NULL
	)`,
}

func writeFreqTable(ctx context.Context, tx *sql.Tx, table, column string, items results.FreqItemList) error {
	stmt, err := tx.PrepareContext(
		ctx, fmt.Sprintf("INSERT INTO %s (rank, %s, freq) VALUES (?, ?, ?)", table, column))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, i+1, item.Word, item.Freq); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func writeMetadata(ctx context.Context, tx *sql.Tx, meta results.Metadata) error {
	values := [][2]any{
		{"total_poems", meta.TotalPoems},
		{"total_imagery_words", meta.TotalImageryWords},
		{"total_imagery_occurrences", meta.TotalImageryOccurrences},
		{"total_single_char_imagery", meta.TotalSingleCharImagery},
		{"total_single_char_occurrences", meta.TotalSingleCharOccurrences},
		{"author", meta.Author},
		{"dynasty", meta.Dynasty},
		{"source", meta.Source},
		{"collection_date", meta.CollectionDate},
		{"run_id", meta.RunID},
		{"source_checksum", meta.SourceChecksum},
	}
	for _, kv := range values {
		if _, err := tx.ExecContext(
			ctx, "INSERT INTO metadata (key, value) VALUES (?, ?)", kv[0], fmt.Sprint(kv[1])); err != nil {
			return fmt.Errorf("failed to insert metadata: %w", err)
		}
	}
	return nil
}

func writePoems(ctx context.Context, tx *sql.Tx, poems []results.Poem) error {
	poemStmt, err := tx.PrepareContext(
		ctx, "INSERT INTO poems (id, title, content, author, dynasty) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer poemStmt.Close()
	imgStmt, err := tx.PrepareContext(
		ctx, "INSERT INTO imagery (poem_id, word, category, count, tier) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer imgStmt.Close()
	for i, poem := range poems {
		if _, err := poemStmt.ExecContext(
			ctx, i, poem.Title, poem.Content, poem.Author, poem.Dynasty); err != nil {
			return fmt.Errorf("failed to insert poem %s: %w", poem.Title, err)
		}
		for _, m := range poem.Imagery {
			if _, err := imgStmt.ExecContext(
				ctx, i, m.Word, m.Category.String(), m.Count, m.Tier.String()); err != nil {
				return fmt.Errorf("failed to insert imagery of %s: %w", poem.Title, err)
			}
		}
	}
	return nil
}

// WriteSQLite stores the document into an SQLite database. Existing
// tables are replaced, the whole export runs in a single transaction.
func WriteSQLite(ctx context.Context, path string, doc *results.Document) (err error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return merror.SourceError{Path: path, Err: err}
	}
	defer db.Close()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return merror.SourceError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			if err2 := tx.Rollback(); err2 != nil {
				log.Error().Err(err2).Msg("failed to rollback SQLite export")
			}
			err = merror.SourceError{Path: path, Err: err}
		}
	}()
	for _, stmt := range schema {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare schema: %w", err)
		}
	}
	if err = writeMetadata(ctx, tx, doc.Metadata); err != nil {
		return
	}
	if err = writePoems(ctx, tx, doc.Poems); err != nil {
		return
	}
	stats := doc.ImageryStatistics
	if err = writeFreqTable(ctx, tx, "word_frequency", "word", stats.WordFrequency); err != nil {
		return
	}
	if err = writeFreqTable(ctx, tx, "category_frequency", "category", stats.CategoryFrequency); err != nil {
		return
	}
	if err = writeFreqTable(ctx, tx, "single_char_frequency", "word", stats.SingleCharFrequency); err != nil {
		return
	}
	err = tx.Commit()
	return
}
