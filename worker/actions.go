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

package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"poetics/corpus"
	"poetics/rdb"
)

func (w *Worker) analyze(ctx context.Context, args rdb.AnalyzeArgs) *rdb.WorkerResult {
	doc, err := w.analyzer.Analyze(
		ctx,
		corpus.AnalyzeArgs{
			Text:    args.Text,
			Author:  args.Author,
			Dynasty: args.Dynasty,
			Source:  args.Source,
		},
	)
	if err != nil {
		return rdb.CreateErrorResult(fmt.Errorf("failed to analyze text: %w", err))
	}
	if w.currJobLog != nil {
		w.currJobLog.NumPoems = doc.Metadata.TotalPoems
	}
	ans, err := rdb.CreateWorkerResult(rdb.ResultTypeDocument, doc)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode analysis")
		return rdb.CreateErrorResult(err)
	}
	return ans
}
