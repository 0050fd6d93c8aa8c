package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/metrics"
)

type MockYouTubeRepo struct {
	mock.Mock
}

func (m *MockYouTubeRepo) SearchVideos(ctx context.Context, req *dto.YouTubeSearchRequest) (*dto.YouTubeSearchPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.YouTubeSearchPage), args.Error(1)
}

func (m *MockYouTubeRepo) GetVideoStatistics(ctx context.Context, ids []string) ([]dto.YouTubeVideoStatistics, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.YouTubeVideoStatistics), args.Error(1)
}

func (m *MockYouTubeRepo) GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.YouTubeVideo), args.Error(1)
}

func (m *MockYouTubeRepo) GetCommentThreads(ctx context.Context, req *dto.YouTubeCommentListRequest) ([]dto.YouTubeCommentThread, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.YouTubeCommentThread), args.Error(1)
}

type MockSearchLog struct {
	mock.Mock
}

func (m *MockSearchLog) Record(ctx context.Context, keyword string, resultCount int) error {
	args := m.Called(ctx, keyword, resultCount)
	return args.Error(0)
}

func (m *MockSearchLog) TopKeywords(ctx context.Context, limit int) ([]repository.KeywordCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.KeywordCount), args.Error(1)
}

type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) Search(ctx context.Context, keyword, pageToken string) (*dto.SearchResult, error) {
	args := m.Called(ctx, keyword, pageToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchResult), args.Error(1)
}

func (m *MockSearchUseCase) Suggestions(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

// countingRecorder counts the events the use cases report
type countingRecorder struct {
	metrics.Nop
	mu       sync.Mutex
	stale    int
	degraded int
}

func (r *countingRecorder) StaleResponse() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale++
}

func (r *countingRecorder) StatsDegraded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded++
}

func (r *countingRecorder) counts() (stale, degraded int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stale, r.degraded
}

func searchItem(id, title string) dto.YouTubeSearchItem {
	return dto.YouTubeSearchItem{ID: id, Snippet: model.VideoSnippet{
		Title:        title,
		ChannelTitle: "channel " + id,
		PublishedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}
