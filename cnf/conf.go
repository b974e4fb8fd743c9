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


package cnf

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"poetics/corpus"
	"poetics/imagery"
	"poetics/monitoring"
	"poetics/rdb"
)

const (
	dfltListenPort             = 3010
	dfltServerReadTimeoutSecs  = 30
	dfltServerWriteTimeoutSecs = 90
	dfltTimeZone               = "Asia/Shanghai"
	dfltAnalysisCacheSize      = 64
	dfltMaxAnalyzeBodyBytes    = 4 * 1024 * 1024
	dfltAnalyzeTimeoutSecs     = 60
	dfltOutputPath             = "dufu_poems_analysis.json"
	dfltNumWorkers             = 1

	EnvSourcePath    = "POETICS_SOURCE"
	EnvOutputPath    = "POETICS_OUTPUT"
	EnvRedisPassword = "REDIS_PASSWORD"
)

// CorpusConf describes the poem collection processed by the `extract`
// action and preloaded by the API server.
type CorpusConf struct {
	SourcePath       string                `json:"sourcePath"`
	SourceDesc       string                `json:"sourceDesc"`
	OutputPath       string                `json:"outputPath"`
	SQLitePath       string                `json:"sqlitePath"`
	TaxonomyPath     string                `json:"taxonomyPath"`
	Author           string                `json:"author"`
	Dynasty          string                `json:"dynasty"`
	NumWorkers       int                   `json:"numWorkers"`
	OverlapPolicy    imagery.OverlapPolicy `json:"overlapPolicy"`
	WidenPunctuation bool                  `json:"widenPunctuation"`
}

func (cc *CorpusConf) AuthorMeta() corpus.AuthorMeta {
	return corpus.AuthorMeta{
		Author:  cc.Author,
		Dynasty: cc.Dynasty,
	}
}

func (cc *CorpusConf) BuilderOptions() []corpus.BuilderOption {
	ans := []corpus.BuilderOption{
		corpus.WithNumWorkers(cc.NumWorkers),
		corpus.WithOverlapPolicy(cc.OverlapPolicy),
	}
	if cc.WidenPunctuation {
		ans = append(ans, corpus.WithNormalizer(&corpus.Normalizer{WidenPunctuation: true}))
	}
	return ans
}

func (cc *CorpusConf) validateAndDefaults() error {
	if cc.OutputPath == "" {
		cc.OutputPath = dfltOutputPath
		log.Warn().
			Str("outputPath", cc.OutputPath).
			Msg("corpus.outputPath not specified, using default")
	}
	if cc.Author == "" {
		cc.Author = corpus.DefaultAuthor
		log.Warn().Str("author", cc.Author).Msg("corpus.author not specified, using default")
	}
	if cc.Dynasty == "" {
		cc.Dynasty = corpus.DefaultDynasty
		log.Warn().Str("dynasty", cc.Dynasty).Msg("corpus.dynasty not specified, using default")
	}
	if cc.SourceDesc == "" {
		cc.SourceDesc = corpus.DefaultSourceDesc
	}
	if cc.NumWorkers == 0 {
		cc.NumWorkers = dfltNumWorkers
		log.Warn().
			Int("numWorkers", cc.NumWorkers).
			Msg("corpus.numWorkers not specified, using default")

	} else if cc.NumWorkers < 0 {
		return fmt.Errorf("invalid corpus.numWorkers: %d", cc.NumWorkers)
	}
	if cc.OverlapPolicy == "" {
		cc.OverlapPolicy = imagery.OverlapKeep

	} else if err := cc.OverlapPolicy.Validate(); err != nil {
		return fmt.Errorf("invalid corpus.overlapPolicy: %w", err)
	}
	if cc.TaxonomyPath != "" {
		isFile, err := fs.IsFile(cc.TaxonomyPath)
		if err != nil {
			return fmt.Errorf("failed to check corpus.taxonomyPath: %w", err)
		}
		if !isFile {
			return fmt.Errorf("corpus.taxonomyPath %s is not a file", cc.TaxonomyPath)
		}
	}
	return nil
}

type Conf struct {
	ListenAddress          string              `json:"listenAddress"`
	PublicURL              string              `json:"publicUrl"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string            `json:"corsAllowedOrigins"`
	Corpus                 *CorpusConf         `json:"corpus"`
	Redis                  *rdb.Conf           `json:"redis"`
	Monitoring             *monitoring.Conf    `json:"monitoring"`
	Logging                logging.LoggingConf `json:"logging"`
	TimeZone               string              `json:"timeZone"`
	AuthHeaderName         string              `json:"authHeaderName"`
	AuthTokens             []string            `json:"authTokens"`

	// AnalysisCacheSize is the number of analyses
	// kept in memory by the API server
	AnalysisCacheSize   int   `json:"analysisCacheSize"`
	MaxAnalyzeBodyBytes int64 `json:"maxAnalyzeBodyBytes"`
	AnalyzeTimeoutSecs  int   `json:"analyzeTimeoutSecs"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.Logging.Level.IsDebugMode()
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call c.Validate()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

func (conf *Conf) AnalyzeTimeout() time.Duration {
	return time.Duration(conf.AnalyzeTimeoutSecs) * time.Second
}

func (conf *Conf) UsesRedis() bool {
	return conf.Redis != nil
}

func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// applyEnv lets environment variables override values
// which typically differ between deployments.
func (conf *Conf) applyEnv() {
	if v := os.Getenv(EnvSourcePath); v != "" {
		conf.Corpus.SourcePath = v
		log.Info().Str("sourcePath", v).Msgf("corpus.sourcePath overridden by %s", EnvSourcePath)
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		conf.Corpus.OutputPath = v
		log.Info().Str("outputPath", v).Msgf("corpus.outputPath overridden by %s", EnvOutputPath)
	}
	if v := os.Getenv(EnvRedisPassword); v != "" && conf.Redis != nil {
		conf.Redis.Password = v
	}
}

// loadDotEnv loads variables from the provided .env files.
// Missing files are skipped, variables already present
// in the environment are kept.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		log.Debug().Str("path", p).Msg("loaded environment file")
	}
	return nil
}

func parseConfig(path string, rawData []byte) (*Conf, error) {
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, err
	}
	if conf.Corpus == nil {
		conf.Corpus = &CorpusConf{}
	}
	conf.applyEnv()
	return &conf, nil
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		log.Fatal().Err(err).Msg("Cannot load environment")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf, err := parseConfig(path, rawData)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}

func validateAndDefaults(conf *Conf) error {
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if len(conf.AuthTokens) > 0 && conf.AuthHeaderName == "" {
		return fmt.Errorf("authTokens configured but authHeaderName is empty")
	}
	if conf.AnalysisCacheSize == 0 {
		conf.AnalysisCacheSize = dfltAnalysisCacheSize
		log.Warn().Msgf("analysisCacheSize not specified, using default: %d", dfltAnalysisCacheSize)

	} else if conf.AnalysisCacheSize < 0 {
		return fmt.Errorf("invalid analysisCacheSize: %d", conf.AnalysisCacheSize)
	}
	if conf.MaxAnalyzeBodyBytes == 0 {
		conf.MaxAnalyzeBodyBytes = dfltMaxAnalyzeBodyBytes
		log.Warn().Msgf("maxAnalyzeBodyBytes not specified, using default: %d", dfltMaxAnalyzeBodyBytes)

	} else if conf.MaxAnalyzeBodyBytes < 0 {
		return fmt.Errorf("invalid maxAnalyzeBodyBytes: %d", conf.MaxAnalyzeBodyBytes)
	}
	if conf.AnalyzeTimeoutSecs == 0 {
		conf.AnalyzeTimeoutSecs = dfltAnalyzeTimeoutSecs
		log.Warn().Msgf("analyzeTimeoutSecs not specified, using default: %d", dfltAnalyzeTimeoutSecs)

	} else if conf.AnalyzeTimeoutSecs < 0 {
		return fmt.Errorf("invalid analyzeTimeoutSecs: %d", conf.AnalyzeTimeoutSecs)
	}

	if conf.Corpus == nil {
		conf.Corpus = &CorpusConf{}
	}
	if err := conf.Corpus.validateAndDefaults(); err != nil {
		return err
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

func ValidateAndDefaults(conf *Conf) {
	if err := validateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
