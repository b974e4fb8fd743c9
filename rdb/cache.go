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
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func DocumentCacheKey(checksum string) string {
	return fmt.Sprintf("%s:%s", DocumentCacheKeyPrefix, checksum)
}

// CachedDocument returns a serialized analysis stored under the checksum.
// The second returned value tells whether the item was found.
func (a *Adapter) CachedDocument(ctx context.Context, checksum string) ([]byte, bool, error) {
	if a.cacheTTL == 0 {
		return nil, false, nil
	}
	data, err := a.c.Get(ctx, DocumentCacheKey(checksum)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil

	} else if err != nil {
		return nil, false, fmt.Errorf("failed to read cached document: %w", err)
	}
	return data, true, nil
}

func (a *Adapter) CacheDocument(ctx context.Context, checksum string, data []byte) error {
	if a.cacheTTL == 0 {
		return nil
	}
	if err := a.c.Set(ctx, DocumentCacheKey(checksum), data, a.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	log.Debug().Str("checksum", checksum).Msg("document stored in Redis cache")
	return nil
}
