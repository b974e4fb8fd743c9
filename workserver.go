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
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"

	"poetics/cnf"
	"poetics/monitoring"
	"poetics/rdb"
	"poetics/worker"
)

func getWorkerID() (workerID string) {
	workerID = os.Getenv("WORKER_ID")
	if workerID == "" {
		workerID = strconv.Itoa(os.Getpid())
	}
	return
}

// newWorkerJobLogger keeps the worker's own load statistics only.
// Job records travel back with results and the API server is the one
// storing them.
func newWorkerJobLogger(conf *cnf.Conf) *monitoring.WorkerJobLogger {
	return monitoring.NewWorkerJobLogger(&monitoring.NullStatusWriter{}, conf.TimezoneLocation())
}

func runWorker(conf *cnf.Conf) {
	workerID := getWorkerID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisConf := conf.Redis
	if redisConf == nil {
		redisConf = rdb.DefaultConf()
		log.Warn().
			Str("host", redisConf.Host).
			Int("port", redisConf.Port).
			Msg("Redis not configured, using default connection")
	}
	radapter := rdb.NewAdapter(ctx, redisConf)
	defer radapter.Close()

	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	jobLogger := newWorkerJobLogger(conf)
	ch := radapter.Subscribe()
	wrk := worker.NewWorker(workerID, radapter, ch, newAnalyzer(conf), jobLogger)
	runServices(ctx, []service{jobLogger, wrk})
}
