package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"yt-dashboard/domain/commenttree"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) GetVideoDetails(ctx context.Context, videoID string) (*dto.VideoDetailResponse, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoDetailResponse), args.Error(1)
}

func (m *MockVideoUseCase) LoadComments(ctx context.Context, videoID string) (dto.CommentsResult, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(dto.CommentsResult), args.Error(1)
}

func (m *MockVideoUseCase) RenderComments(ctx context.Context, videoID string, disclosure commenttree.Disclosure) (*commenttree.View, error) {
	args := m.Called(ctx, videoID, disclosure)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commenttree.View), args.Error(1)
}

type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) session(args mock.Arguments) (*model.SearchSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchSession), args.Error(1)
}

func (m *MockSessionUseCase) Create(ctx context.Context) (*model.SearchSession, error) {
	return m.session(m.Called(ctx))
}

func (m *MockSessionUseCase) Get(ctx context.Context, id string) (*model.SearchSession, error) {
	return m.session(m.Called(ctx, id))
}

func (m *MockSessionUseCase) Search(ctx context.Context, id, keyword string) (*model.SearchSession, error) {
	return m.session(m.Called(ctx, id, keyword))
}

func (m *MockSessionUseCase) GoToPage(ctx context.Context, id string, page int) (*model.SearchSession, error) {
	return m.session(m.Called(ctx, id, page))
}

func (m *MockSessionUseCase) Retry(ctx context.Context, id string) (*model.SearchSession, error) {
	return m.session(m.Called(ctx, id))
}

func (m *MockSessionUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
