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
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"poetics/cnf"
	"poetics/corpus"
	"poetics/general"
	"poetics/monitoring"
	"poetics/taxonomy"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
	shutdownTimeout            = 10 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		if word := ctx.Query("word"); word != "" {
			logging.AddLogEvent(ctx, "word", word)
		}
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin {
					allowedOrigin = origin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			}

			if ctx.Request.Method == "OPTIONS" {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthHeaderName) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

// newAnalyzer creates the analyzer shared by all the actions
// from the `corpus` section of the configuration.
func newAnalyzer(conf *cnf.Conf) *corpus.Analyzer {
	tx, err := taxonomy.LoadOrDefault(conf.Corpus.TaxonomyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load taxonomy")
	}
	log.Info().
		Int("singleChar", tx.NumTerms(taxonomy.TierSingleChar)).
		Int("multiChar", tx.NumTerms(taxonomy.TierMultiChar)).
		Msg("taxonomy loaded")
	return corpus.NewAnalyzer(
		tx,
		conf.Corpus.AuthorMeta(),
		conf.Corpus.SourceDesc,
		conf.TimezoneLocation(),
		conf.Corpus.BuilderOptions()...,
	)
}

// newStatusWriter provides a TimescaleDB writer for job records
// if monitoring is configured.
func newStatusWriter(ctx context.Context, conf *cnf.Conf) monitoring.StatusWriter {
	if conf.Monitoring == nil {
		return &monitoring.NullStatusWriter{}
	}
	writer, err := monitoring.NewTimescaleDBWriter(ctx, conf.Monitoring.DB, conf.TimezoneLocation())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize TimescaleDB writer")
	}
	log.Info().Msg("job records will be written to TimescaleDB")
	return writer
}

// runServices starts all the services and waits for a shutdown
// signal (i.e. ctx being cancelled) to stop them.
func runServices(ctx context.Context, services []service) {
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func main() {
	version := general.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "POETICS - imagery extraction from classical Chinese poetry\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] extract [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] worker [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	sourcePath := flag.String("source", "", "a TXT file with poems (overrides corpus.sourcePath)")
	outputPath := flag.String("output", "", "an output JSON file (overrides corpus.outputPath)")
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("poetics %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	if *sourcePath != "" {
		conf.Corpus.SourcePath = *sourcePath
	}
	if *outputPath != "" {
		conf.Corpus.OutputPath = *outputPath
	}

	if action == "worker" {
		if conf.Logging.Path != "" {
			conf.Logging.Path = filepath.Join(filepath.Dir(conf.Logging.Path), "worker.log")
		}
		logging.SetupLogging(conf.Logging)
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()

	} else if action == "test" {
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return

	} else {
		logging.SetupLogging(conf.Logging)
	}

	log.Info().Str("version", version.Version).Msg("Starting POETICS")
	cnf.ValidateAndDefaults(conf)

	switch action {
	case "extract":
		runExtract(conf)
	case "server":
		runApiServer(conf, version)
	case "worker":
		runWorker(conf)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
