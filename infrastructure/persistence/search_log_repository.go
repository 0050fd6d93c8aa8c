package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/logger"
)

// EnsureSearchLogSchema creates the keyword log table if not exists
func EnsureSearchLogSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS search_keywords (
        keyword TEXT PRIMARY KEY,
        searches BIGINT NOT NULL DEFAULT 0,
        last_result_count INTEGER NOT NULL DEFAULT 0,
        last_searched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create search_keywords table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_search_keywords_searches ON search_keywords(searches DESC)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_search_keywords_searches")
	}
	return nil
}

// SearchLogRepository counts searched keywords in Postgres
type SearchLogRepository struct{ db *sql.DB }

func NewSearchLogRepository(db *sql.DB) repository.ISearchLog {
	return &SearchLogRepository{db: db}
}

// Record upserts the keyword, normalised to lower case
func (r *SearchLogRepository) Record(ctx context.Context, keyword string, resultCount int) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO search_keywords (keyword, searches, last_result_count, last_searched_at)
        VALUES ($1, 1, $2, NOW())
        ON CONFLICT (keyword) DO UPDATE SET
            searches = search_keywords.searches + 1,
            last_result_count = EXCLUDED.last_result_count,
            last_searched_at = EXCLUDED.last_searched_at`, keyword, resultCount)
	if err != nil {
		return fmt.Errorf("failed to record search keyword: %w", err)
	}
	return nil
}

// TopKeywords returns the most searched keywords that produced results
func (r *SearchLogRepository) TopKeywords(ctx context.Context, limit int) ([]repository.KeywordCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT keyword, searches FROM search_keywords
        WHERE last_result_count > 0
        ORDER BY searches DESC, last_searched_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top keywords: %w", err)
	}
	defer rows.Close()

	out := make([]repository.KeywordCount, 0, limit)
	for rows.Next() {
		var k repository.KeywordCount
		if err := rows.Scan(&k.Keyword, &k.Searches); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keywords: %w", err)
	}
	return out, nil
}
