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


package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"

	"poetics/cnf"
	"poetics/corpus"
	"poetics/export"
	"poetics/merror"
	"poetics/results"
)

var (
	ErrNoPoems = errors.New("no poems found in the source")
)

func readSource(path string) (string, error) {
	isFile, err := fs.IsFile(path)
	if err != nil {
		return "", merror.SourceError{Path: path, Err: err}
	}
	if !isFile {
		return "", merror.SourceError{Path: path, Err: os.ErrNotExist}
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return "", merror.SourceError{Path: path, Err: err}
	}
	if !utf8.Valid(rawData) {
		return "", merror.SourceError{Path: path, Err: errors.New("file is not valid UTF-8")}
	}
	return string(rawData), nil
}

// extract analyzes the configured source and stores the resulting
// document. Nothing is written in case no poem is found.
func extract(ctx context.Context, conf *cnf.CorpusConf, analyzer *corpus.Analyzer) (*results.Document, error) {
	if conf.SourcePath == "" {
		return nil, merror.InputError{Msg: "no corpus source specified"}
	}
	text, err := readSource(conf.SourcePath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", conf.SourcePath).Int("size", len(text)).Msg("source loaded")
	doc, err := analyzer.Analyze(ctx, corpus.AnalyzeArgs{Text: text})
	if err != nil {
		return nil, err
	}
	if doc.Metadata.TotalPoems == 0 {
		return doc, ErrNoPoems
	}
	if err := export.WriteJSONFile(conf.OutputPath, doc); err != nil {
		return doc, fmt.Errorf("failed to export analysis: %w", err)
	}
	log.Info().Str("path", conf.OutputPath).Msg("analysis saved")
	if conf.SQLitePath != "" {
		if err := export.WriteSQLite(ctx, conf.SQLitePath, doc); err != nil {
			return doc, fmt.Errorf("failed to export analysis: %w", err)
		}
		log.Info().Str("path", conf.SQLitePath).Msg("analysis saved to SQLite")
	}
	return doc, nil
}

func freqItemsString(items results.FreqItemList) string {
	var ans strings.Builder
	for i, item := range items {
		if i > 0 {
			ans.WriteString(", ")
		}
		fmt.Fprintf(&ans, "%s(%d)", item.Word, item.Freq)
	}
	return ans.String()
}

func logSummary(doc *results.Document) {
	summary := results.Summarize(doc.Metadata.TotalPoems, doc.ImageryStatistics)
	log.Info().
		Int("numPoems", doc.Metadata.TotalPoems).
		Int("uniqueImagery", doc.Metadata.TotalImageryWords).
		Int("imageryOccurrences", doc.Metadata.TotalImageryOccurrences).
		Int("uniqueSingleChar", doc.Metadata.TotalSingleCharImagery).
		Int("singleCharOccurrences", doc.Metadata.TotalSingleCharOccurrences).
		Msg("analysis finished")
	for _, share := range summary.CategoryShares {
		log.Info().
			Str("category", share.Category).
			Int("count", share.Count).
			Float64("percent", share.Percent).
			Msg("category share")
	}
	log.Info().Msgf("top single character imagery: %s", freqItemsString(summary.TopSingleChar))
	log.Info().
		Float64("share", summary.TopWordsShare).
		Msgf("top imagery: %s", freqItemsString(summary.TopWords))
}

func runExtract(conf *cnf.Conf) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := extract(ctx, conf.Corpus, newAnalyzer(conf))
	if errors.Is(err, ErrNoPoems) {
		log.Error().Str("path", conf.Corpus.SourcePath).Msg("no poems found, nothing to save")
		return

	} else if err != nil {
		log.Fatal().Err(err).Msg("failed to extract imagery")
	}
	logSummary(doc)
}
