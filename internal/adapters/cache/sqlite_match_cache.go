package cache

import (
	"carrier-match-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed cache of match results. Rows older than TTL are treated as
// misses; a zero TTL keeps rows forever.
type SqliteMatchCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSqliteMatchCache(db *sql.DB, ttl time.Duration) *SqliteMatchCache {
	return &SqliteMatchCache{DB: db, TTL: ttl}
}

func (s *SqliteMatchCache) Get(ctx context.Context, key string) (domain.MatchResult, bool, error) {
	if s.DB == nil {
		return domain.MatchResult{}, false, errors.New("match cache: db is nil")
	}

	var payload string
	var storedAt int64
	err := s.DB.QueryRowContext(ctx, `
	SELECT result, stored_at
	FROM match_cache
	WHERE cache_key = ?;
	`, key).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MatchResult{}, false, nil
	}
	if err != nil {
		return domain.MatchResult{}, false, fmt.Errorf("get match cache: query match_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(time.Unix(storedAt, 0)) > s.TTL {
		return domain.MatchResult{}, false, nil
	}

	r, err := decodeMatch([]byte(payload))
	if err != nil {
		return domain.MatchResult{}, false, fmt.Errorf("get match cache: %w", err)
	}
	return r, true, nil
}

func (s *SqliteMatchCache) Put(ctx context.Context, key string, r domain.MatchResult) error {
	if s.DB == nil {
		return errors.New("match cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert match cache: empty key")
	}

	b, err := encodeMatch(r)
	if err != nil {
		return fmt.Errorf("insert match cache: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO match_cache (
		cache_key,
		result,
		stored_at
	)
	VALUES (?, ?, ?);
	`, key, string(b), time.Now().Unix()); err != nil {
		return fmt.Errorf("insert match cache key=%q: %w", key, err)
	}

	return nil
}
