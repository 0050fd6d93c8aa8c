package usecase

import (
	"context"
	"fmt"
	"strings"

	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/logger"
	"yt-dashboard/infrastructure/metrics"
)

const (
	defaultSearchPageSize = 12
	defaultSuggestions    = 3
	maxSuggestions        = 20
)

// DefaultSuggestions are offered in the idle state when no keyword history exists
var DefaultSuggestions = []string{"React JS", "JavaScript", "Tutorial"}

// ISearchUseCase aggregates one page of keyword search results with statistics
type ISearchUseCase interface {
	Search(ctx context.Context, keyword, pageToken string) (*dto.SearchResult, error)
	Suggestions(ctx context.Context, limit int) ([]string, error)
}

// SearchUseCase implements ISearchUseCase on top of the YouTube repository
type SearchUseCase struct {
	youtubeRepo repository.IYouTube
	searchLog   repository.ISearchLog // optional
	recorder    metrics.IRecorder
	pageSize    int64
}

// NewSearchUseCase creates a new search use case instance
func NewSearchUseCase(youtubeRepo repository.IYouTube, recorder metrics.IRecorder) *SearchUseCase {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &SearchUseCase{youtubeRepo: youtubeRepo, recorder: recorder, pageSize: defaultSearchPageSize}
}

// WithSearchLog enables keyword history (fluent)
func (u *SearchUseCase) WithSearchLog(searchLog repository.ISearchLog) *SearchUseCase {
	u.searchLog = searchLog
	return u
}

// Search fetches one result page for keyword. An empty pageToken selects the
// first page. Exactly one search and at most one statistics request are made.
func (u *SearchUseCase) Search(ctx context.Context, keyword, pageToken string) (*dto.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", model.ErrMalformedInput)
	}

	page, err := u.youtubeRepo.SearchVideos(ctx, &dto.YouTubeSearchRequest{
		Q:          keyword,
		PageToken:  pageToken,
		MaxResults: u.pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	result := &dto.SearchResult{
		Keyword:       keyword,
		Videos:        []model.VideoSummary{},
		NextPageToken: page.NextPageToken,
		PrevPageToken: page.PrevPageToken,
	}

	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}

	if len(page.Items) > 0 {
		var stats []dto.YouTubeVideoStatistics
		if len(ids) > 0 {
			stats, err = u.youtubeRepo.GetVideoStatistics(ctx, ids)
			if err != nil {
				logger.GetLogger().
					WithField("error", err).
					WithField("keyword", keyword).
					Warn("Statistics unavailable, serving videos with empty statistics")
				u.recorder.StatsDegraded()
				result.StatsUnavailable = true
				stats = nil
			}
		}
		result.Videos = mergeStatistics(page.Items, stats)
	}

	result.Summary = Summarize(result.Videos)

	if pageToken == "" {
		u.recordSearch(ctx, keyword, len(result.Videos))
	}
	return result, nil
}

// mergeStatistics attaches statistics to search items by id. Items without
// an id fall back to the statistics entry at the same position. Anything
// unmatched gets empty statistics. Output order is the search order.
func mergeStatistics(items []dto.YouTubeSearchItem, stats []dto.YouTubeVideoStatistics) []model.VideoSummary {
	byID := make(map[string]model.VideoStatistics, len(stats))
	for _, s := range stats {
		if s.ID != "" {
			byID[s.ID] = s.Statistics
		}
	}

	videos := make([]model.VideoSummary, 0, len(items))
	for i, item := range items {
		v := model.VideoSummary{ID: item.ID, Snippet: item.Snippet}
		if item.ID != "" {
			v.Statistics = byID[item.ID]
		} else if i < len(stats) && stats[i].ID == "" {
			v.Statistics = stats[i].Statistics
		}
		videos = append(videos, v)
	}
	return videos
}

// Summarize builds the results header for a page of videos
func Summarize(videos []model.VideoSummary) dto.SearchSummary {
	summary := dto.SearchSummary{TotalVideos: len(videos)}
	for _, v := range videos {
		summary.TotalViews += v.Statistics.ViewCount
	}
	return summary
}

func (u *SearchUseCase) recordSearch(ctx context.Context, keyword string, resultCount int) {
	if u.searchLog == nil {
		return
	}
	if err := u.searchLog.Record(ctx, keyword, resultCount); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to record search keyword")
	}
}

// Suggestions returns the most searched keywords, or DefaultSuggestions
// when there is no history to draw from
func (u *SearchUseCase) Suggestions(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultSuggestions
	}
	if limit > maxSuggestions {
		limit = maxSuggestions
	}
	if u.searchLog == nil {
		return fallbackSuggestions(limit), nil
	}

	top, err := u.searchLog.TopKeywords(ctx, limit)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to load keyword suggestions, using defaults")
		return fallbackSuggestions(limit), nil
	}
	if len(top) == 0 {
		return fallbackSuggestions(limit), nil
	}

	out := make([]string, 0, len(top))
	for _, k := range top {
		out = append(out, k.Keyword)
	}
	return out, nil
}

func fallbackSuggestions(limit int) []string {
	if limit > len(DefaultSuggestions) {
		limit = len(DefaultSuggestions)
	}
	return append([]string(nil), DefaultSuggestions[:limit]...)
}
