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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MsgNewQuery                = "newQuery"
	DefaultQueueKey            = "poeticsQueue"
	DefaultResultChannelPrefix = "poeticsResults"
	DefaultQueryChannel        = "poeticsQueries"
	DefaultResultExpiration    = 10 * time.Minute
	DocumentCacheKeyPrefix     = "poeticsDocument"

	FuncAnalyze = "analyze"
)

var (
	ErrorEmptyQueue = errors.New("no query in the queue")
)

type Query struct {
	Channel string          `json:"channel"`
	Func    string          `json:"func"`
	Args    json.RawMessage `json:"args"`
}

func (q Query) ToJSON() (string, error) {
	ans, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

func DecodeQuery(q string) (Query, error) {
	var ans Query
	err := json.Unmarshal([]byte(q), &ans)
	return ans, err
}

// AnalyzeArgs are arguments of the `analyze` function
type AnalyzeArgs struct {
	Text    string `json:"text"`
	Author  string `json:"author"`
	Dynasty string `json:"dynasty"`
	Source  string `json:"source"`
}

func NewAnalyzeQuery(args AnalyzeArgs) (Query, error) {
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return Query{}, fmt.Errorf("failed to create analyze query: %w", err)
	}
	return Query{Func: FuncAnalyze, Args: rawArgs}, nil
}

// Adapter provides a Redis-based job queue between
// the API server and workers.
type Adapter struct {
	ctx                 context.Context
	c                   *redis.Client
	channelQuery        string
	channelResultPrefix string
	queueKey            string
	cacheTTL            time.Duration
}

func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		select {
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis within %s", timeout)
		case <-a.ctx.Done():
			return a.ctx.Err()
		case <-tick.C:
			if err := a.c.Ping(a.ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("Redis not ready yet, going to try again")
				continue
			}
			log.Info().Msg("Redis connection OK")
			return nil
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.c.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

// PublishQuery enqueues the query and notifies workers. The returned
// channel provides exactly one result (possibly an error one) unless
// the ctx is cancelled first - in such case the channel is just closed.
func (a *Adapter) PublishQuery(ctx context.Context, query Query) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.channelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("publishing query")

	msg, err := query.ToJSON()
	if err != nil {
		return nil, err
	}
	sub := a.c.Subscribe(ctx, query.Channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to result channel: %w", err)
	}
	if err := a.c.LPush(ctx, a.queueKey, msg).Err(); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to enqueue query: %w", err)
	}
	ans := make(chan *WorkerResult, 1)

	// now we wait for response and send result via `ans`
	go func() {
		defer close(ans)
		defer sub.Close()
		var item *redis.Message
		select {
		case <-ctx.Done():
			log.Warn().Str("channel", query.Channel).Msg("stopped waiting for query result")
			return
		case item = <-sub.Channel():
		}
		if item == nil {
			ans <- CreateErrorResult(errors.New("result channel closed unexpectedly"))
			return
		}
		result := new(WorkerResult)
		cmd := a.c.Get(ctx, item.Payload)
		if cmd.Err() != nil {
			result = CreateErrorResult(cmd.Err())

		} else if err := json.Unmarshal([]byte(cmd.Val()), result); err != nil {
			result = CreateErrorResult(err)
		}
		ans <- result
	}()
	return ans, a.c.Publish(ctx, a.channelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	cmd := a.c.RPop(a.ctx, a.queueKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return Query{}, ErrorEmptyQueue

	} else if cmd.Err() != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", cmd.Err())
	}
	q, err := DecodeQuery(cmd.Val())
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.ResultType.String()).
		Msg("publishing result")
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := a.c.Set(a.ctx, channelName, string(data), DefaultResultExpiration).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return a.c.Publish(a.ctx, channelName, channelName).Err()
}

func (a *Adapter) Subscribe() <-chan *redis.Message {
	sub := a.c.Subscribe(a.ctx, a.channelQuery)
	return sub.Channel()
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

func NewAdapter(ctx context.Context, conf *Conf) *Adapter {
	chRes := conf.ChannelResultPrefix
	chQuery := conf.ChannelQuery
	queueKey := conf.QueueKey
	if chRes == "" {
		chRes = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", chRes).
			Msg("Redis channel for results not specified, using default")
	}
	if chQuery == "" {
		chQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", chQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	if queueKey == "" {
		queueKey = DefaultQueueKey
		log.Warn().
			Str("key", queueKey).
			Msg("Redis queue key not specified, using default")
	}

	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:                 ctx,
		channelQuery:        chQuery,
		channelResultPrefix: chRes,
		queueKey:            queueKey,
		cacheTTL:            conf.ResultCacheTTL(),
	}
}
