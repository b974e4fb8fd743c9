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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetics/corpus"
	"poetics/imagery"
)

func TestParseConfigDefaults(t *testing.T) {
	conf, err := parseConfig("conf.json", []byte(`{"listenAddress": "127.0.0.1"}`))
	require.NoError(t, err)
	require.NoError(t, validateAndDefaults(conf))
	assert.Equal(t, dfltListenPort, conf.ListenPort)
	assert.Equal(t, "http://127.0.0.1:3010", conf.PublicURL)
	assert.Equal(t, dfltTimeZone, conf.TimeZone)
	assert.Equal(t, dfltAnalysisCacheSize, conf.AnalysisCacheSize)
	assert.Equal(t, int64(dfltMaxAnalyzeBodyBytes), conf.MaxAnalyzeBodyBytes)
	assert.Equal(t, 60*time.Second, conf.AnalyzeTimeout())
	assert.False(t, conf.UsesRedis())

	require.NotNil(t, conf.Corpus)
	assert.Equal(t, dfltOutputPath, conf.Corpus.OutputPath)
	assert.Equal(t, corpus.DefaultAuthorMeta(), conf.Corpus.AuthorMeta())
	assert.Equal(t, corpus.DefaultSourceDesc, conf.Corpus.SourceDesc)
	assert.Equal(t, 1, conf.Corpus.NumWorkers)
	assert.Equal(t, imagery.OverlapKeep, conf.Corpus.OverlapPolicy)
	assert.Len(t, conf.Corpus.BuilderOptions(), 2)
}

func TestParseConfigFull(t *testing.T) {
	src := `{
		"listenPort": 8080,
		"timeZone": "UTC",
		"redis": {"host": "redis", "db": 2},
		"corpus": {
			"sourcePath": "dufu.txt",
			"author": "李白",
			"numWorkers": 4,
			"overlapPolicy": "subtract",
			"widenPunctuation": true
		}
	}`
	conf, err := parseConfig("conf.json", []byte(src))
	require.NoError(t, err)
	conf.Logging.Level = "debug"
	require.NoError(t, validateAndDefaults(conf))
	assert.Equal(t, 8080, conf.ListenPort)
	assert.Equal(t, time.UTC.String(), conf.TimezoneLocation().String())
	assert.True(t, conf.UsesRedis())
	assert.Equal(t, 6379, conf.Redis.Port)
	assert.Equal(t, 2, conf.Redis.DB)
	assert.True(t, conf.IsDebugMode())
	assert.Equal(t, "dufu.txt", conf.Corpus.SourcePath)
	assert.Equal(t, "李白", conf.Corpus.Author)
	assert.Equal(t, corpus.DefaultDynasty, conf.Corpus.Dynasty)
	assert.Equal(t, imagery.OverlapSubtract, conf.Corpus.OverlapPolicy)
	assert.Len(t, conf.Corpus.BuilderOptions(), 3)
}

func TestParseConfigInvalidJSON(t *testing.T) {
	_, err := parseConfig("conf.json", []byte(`{"listenPort": "x"}`))
	assert.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	cases := map[string]string{
		"negative workers": `{"corpus": {"numWorkers": -1}}`,
		"bad policy":       `{"corpus": {"overlapPolicy": "merge"}}`,
		"missing taxonomy": `{"corpus": {"taxonomyPath": "/nonexistent/taxonomy.yaml"}}`,
		"bad time zone":    `{"timeZone": "Mars/Olympus"}`,
		"tokens no header": `{"authTokens": ["secret"]}`,
		"redis no host":    `{"redis": {"port": 6379}}`,
		"negative cache":   `{"analysisCacheSize": -5}`,
	}
	for name, src := range cases {
		conf, err := parseConfig("conf.json", []byte(src))
		require.NoError(t, err, name)
		assert.Error(t, validateAndDefaults(conf), name)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvSourcePath, "/data/poems.txt")
	t.Setenv(EnvOutputPath, "/data/out.json")
	t.Setenv(EnvRedisPassword, "s3cret")
	conf, err := parseConfig("conf.json", []byte(`{"redis": {"host": "localhost"}, "corpus": {"sourcePath": "x.txt"}}`))
	require.NoError(t, err)
	assert.Equal(t, "/data/poems.txt", conf.Corpus.SourcePath)
	assert.Equal(t, "/data/out.json", conf.Corpus.OutputPath)
	assert.Equal(t, "s3cret", conf.Redis.Password)
}

func TestLoadDotEnv(t *testing.T) {
	const name = "POETICS_TEST_DOTENV_VALUE"
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(name+"=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(name) })

	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "from-file", os.Getenv(name))
}

func TestGetSourcePath(t *testing.T) {
	conf, err := parseConfig("/etc/poetics/conf.json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "/etc/poetics/conf.json", conf.GetSourcePath())
}
