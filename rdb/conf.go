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

package rdb

import (
	"fmt"
	"time"
)

const (
	dfltRedisPort          = 6379
	dfltResultCacheTTLSecs = 3600
)

type Conf struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	DB                  int    `json:"db"`
	Password            string `json:"password"`
	ChannelQuery        string `json:"channelQuery"`
	ChannelResultPrefix string `json:"channelResultPrefix"`
	QueueKey            string `json:"queueKey"`

	// ResultCacheTTLSecs specifies how long finished analyses
	// are kept in Redis. Zero disables the cache.
	ResultCacheTTLSecs int `json:"resultCacheTTLSecs"`
}

func (conf *Conf) ResultCacheTTL() time.Duration {
	return time.Duration(conf.ResultCacheTTLSecs) * time.Second
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.Host == "" {
		return fmt.Errorf("missing Redis host")
	}
	if conf.Port == 0 {
		conf.Port = dfltRedisPort
	}
	if conf.ResultCacheTTLSecs < 0 {
		return fmt.Errorf("invalid resultCacheTTLSecs: %d", conf.ResultCacheTTLSecs)
	}
	return nil
}

// DefaultConf is used in case the configuration
// does not specify Redis connection but a Redis
// dependent service is started
func DefaultConf() *Conf {
	return &Conf{
		Host:               "localhost",
		Port:               dfltRedisPort,
		ResultCacheTTLSecs: dfltResultCacheTTLSecs,
	}
}
