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
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"poetics/cnf"
	"poetics/corpus"
	corpusActions "poetics/corpus/handlers"
	"poetics/export"
	"poetics/general"
	"poetics/monitoring"
	monitoringActions "poetics/monitoring/handlers"
	"poetics/openapi"
	"poetics/rdb"
	"poetics/results"
)

type serverInfo struct {
	Name         string              `json:"name"`
	Version      general.VersionInfo `json:"version"`
	PublicURL    string              `json:"publicUrl"`
	CorpusLoaded bool                `json:"corpusLoaded"`
	NumPoems     int                 `json:"numPoems"`
	Author       string              `json:"author,omitempty"`
	UsesWorkers  bool                `json:"usesWorkers"`
}

func mkServerInfo(conf *cnf.Conf, version general.VersionInfo, doc *results.Document) gin.HandlerFunc {
	info := serverInfo{
		Name:        "POETICS",
		Version:     version,
		PublicURL:   conf.PublicURL,
		UsesWorkers: conf.UsesRedis(),
	}
	if doc != nil {
		info.CorpusLoaded = true
		info.NumPoems = doc.Metadata.TotalPoems
		info.Author = doc.Metadata.Author
	}
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, info)
	}
}

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	version   general.VersionInfo
	radapter  *rdb.Adapter
	analyzer  *corpus.Analyzer
	doc       *results.Document
	jobLogger *monitoring.WorkerJobLogger
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actionsConf := corpusActions.ActionsConf{
		CacheSize:      api.conf.AnalysisCacheSize,
		MaxBodyBytes:   api.conf.MaxAnalyzeBodyBytes,
		AnalyzeTimeout: api.conf.AnalyzeTimeout(),
	}
	var actions *corpusActions.Actions
	var err error
	if api.radapter != nil {
		actions, err = corpusActions.NewActions(
			api.doc, api.analyzer, api.radapter, api.jobLogger, actionsConf)

	} else {
		actions, err = corpusActions.NewActions(
			api.doc, api.analyzer, nil, api.jobLogger, actionsConf)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API actions")
		return
	}

	engine.GET("/", mkServerInfo(api.conf, api.version, api.doc))

	engine.GET("/openapi", openapi.MkHandleRequest(api.conf.PublicURL, api.version.Version))

	engine.GET(
		"/taxonomy", actions.Taxonomy)

	engine.GET(
		"/imagery", actions.Imagery)

	engine.GET(
		"/imagery/stats", actions.Stats)

	engine.GET(
		"/imagery/cloud", actions.WordCloud)

	engine.GET(
		"/poems", actions.Poems)

	engine.GET(
		"/poems/:idx", actions.Poem)

	engine.POST(
		"/analyze", AuthRequired(api.conf), actions.Analyze)

	monActions := monitoringActions.NewActions(api.jobLogger)

	engine.GET(
		"/monitoring/workers-load", monActions.WorkersLoad)

	engine.GET(
		"/monitoring/workers-load/:workerId", monActions.SingleWorkerLoad)

	engine.GET(
		"/monitoring/recent-records", monActions.RecentRecords)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down POETICS HTTP API server")
	return api.server.Shutdown(ctx)
}

// loadServedDocument provides the corpus document served by the API.
// A previously exported document is preferred as long as it was created
// from the current source (or the source is not available), otherwise
// the configured source is analyzed. Nil is returned if neither is available.
func loadServedDocument(ctx context.Context, conf *cnf.Conf, analyzer *corpus.Analyzer) *results.Document {
	var text string
	var srcErr error
	if conf.Corpus.SourcePath != "" {
		text, srcErr = readSource(conf.Corpus.SourcePath)
	}
	srcOK := conf.Corpus.SourcePath != "" && srcErr == nil

	if conf.Corpus.OutputPath != "" && fs.PathExists(conf.Corpus.OutputPath) {
		doc, err := export.ReadJSONFile(conf.Corpus.OutputPath)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load analysis document, going to analyze the source")

		} else if srcOK && doc.Metadata.SourceChecksum != results.Checksum(text) {
			log.Warn().
				Str("path", conf.Corpus.OutputPath).
				Str("source", conf.Corpus.SourcePath).
				Msg("analysis document does not match the source, going to analyze the source")

		} else {
			log.Info().
				Str("path", conf.Corpus.OutputPath).
				Int("numPoems", doc.Metadata.TotalPoems).
				Msg("loaded analysis document")
			return doc
		}
	}
	if conf.Corpus.SourcePath == "" {
		log.Warn().Msg("no corpus source configured, only /taxonomy and /analyze will provide data")
		return nil
	}
	if srcErr != nil {
		log.Error().Err(srcErr).Msg("failed to read corpus source")
		return nil
	}
	doc, err := analyzer.Analyze(ctx, corpus.AnalyzeArgs{Text: text})
	if err != nil {
		log.Error().Err(err).Msg("failed to analyze corpus source")
		return nil
	}
	return doc
}

func runApiServer(
	conf *cnf.Conf,
	version general.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var radapter *rdb.Adapter
	if conf.UsesRedis() {
		radapter = rdb.NewAdapter(ctx, conf.Redis)
		err := radapter.TestConnection(redisConnectionTestTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		defer radapter.Close()

	} else {
		log.Info().Msg("Redis not configured, analyses will run in-process")
	}
	services := make([]service, 0, 3)
	statusWriter := newStatusWriter(ctx, conf)
	if tsWriter, ok := statusWriter.(service); ok {
		services = append(services, tsWriter)
	}
	jobLogger := monitoring.NewWorkerJobLogger(statusWriter, conf.TimezoneLocation())
	analyzer := newAnalyzer(conf)
	server := &apiServer{
		conf:      conf,
		version:   version,
		radapter:  radapter,
		analyzer:  analyzer,
		doc:       loadServedDocument(ctx, conf, analyzer),
		jobLogger: jobLogger,
	}
	services = append(services, jobLogger, server)
	runServices(ctx, services)
}
