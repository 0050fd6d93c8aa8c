package repository

import "context"

// KeywordCount is a keyword with the number of times it was searched
type KeywordCount struct {
	Keyword  string `json:"keyword"`
	Searches int64  `json:"searches"`
}

// ISearchLog records searched keywords to suggest them in the idle state
type ISearchLog interface {
	Record(ctx context.Context, keyword string, resultCount int) error
	TopKeywords(ctx context.Context, limit int) ([]KeywordCount, error)
}
