package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"yt-dashboard/domain/commenttree"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/usecase"
)

func commentsReq(videoID string) interface{} {
	return mock.MatchedBy(func(req *dto.YouTubeCommentListRequest) bool {
		return req.VideoID == videoID && req.MaxResults == 20 && req.Order == "relevance"
	})
}

func threadWithReplies(id string, replies int) dto.YouTubeCommentThread {
	thread := dto.YouTubeCommentThread{
		ID:              "t-" + id,
		TopLevelComment: dto.YouTubeComment{ID: id, AuthorDisplayName: "ann", TextDisplay: "top " + id},
		TotalReplyCount: int64(replies),
	}
	for i := 0; i < replies; i++ {
		thread.Replies = append(thread.Replies, dto.YouTubeComment{ID: fmt.Sprintf("%s-r%d", id, i)})
	}
	return thread
}

func TestGetVideoDetails(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	video := &model.YouTubeVideo{
		ID: "vid-1",
		Snippet: model.VideoSnippet{
			Title:        "Go in 100 Seconds",
			ChannelTitle: "fireship",
			PublishedAt:  time.Now().Add(-49 * time.Hour),
		},
		Statistics: model.VideoStatistics{ViewCount: 1_500_000, LikeCount: 45_000, CommentCount: 1_200},
		Duration:   "PT2M17S",
	}
	repo.On("GetVideoDetails", mock.Anything, "vid-1").Return(video, nil).Once()
	repo.On("GetCommentThreads", mock.Anything, commentsReq("vid-1")).
		Return([]dto.YouTubeCommentThread{threadWithReplies("c1", 2), threadWithReplies("c2", 0)}, nil).Once()

	resp, err := uc.GetVideoDetails(context.Background(), "vid-1")
	require.NoError(t, err)

	assert.Equal(t, video, resp.Video)
	assert.Equal(t, "1.5M", resp.Display.Views)
	assert.Equal(t, "45.0K", resp.Display.Likes)
	assert.Equal(t, "1.2K", resp.Display.Comments)
	assert.Equal(t, "2:17", resp.Display.Duration)
	assert.Equal(t, "2 days ago", resp.Display.PublishedAgo)
	assert.Equal(t, "F", resp.Display.ChannelInitial)

	assert.Equal(t, 3.08, resp.Engagement.EngagementRate)
	assert.Equal(t, []string{"Views", "Likes", "Comments"}, resp.Engagement.Chart.Labels)

	assert.True(t, resp.Comments.Available)
	require.Len(t, resp.Comments.Comments, 2)
	assert.Len(t, resp.Comments.Comments[0].Replies, 2)
	repo.AssertExpectations(t)
}

func TestGetVideoDetails_CommentsUnavailableDoesNotFail(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	repo.On("GetVideoDetails", mock.Anything, "vid-1").Return(&model.YouTubeVideo{ID: "vid-1"}, nil).Once()
	repo.On("GetCommentThreads", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: commentsDisabled", model.ErrCommentsUnavailable)).Once()

	resp, err := uc.GetVideoDetails(context.Background(), "vid-1")
	require.NoError(t, err)
	assert.False(t, resp.Comments.Available)
	assert.NotNil(t, resp.Comments.Comments)
	assert.Empty(t, resp.Comments.Comments)
	assert.Equal(t, 0.0, resp.Engagement.EngagementRate)
}

func TestGetVideoDetails_NotFound(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	repo.On("GetVideoDetails", mock.Anything, "gone").
		Return(nil, fmt.Errorf("%w: gone", model.ErrVideoNotFound)).Once()
	repo.On("GetCommentThreads", mock.Anything, mock.Anything).Return([]dto.YouTubeCommentThread{}, nil).Maybe()

	_, err := uc.GetVideoDetails(context.Background(), "gone")
	assert.ErrorIs(t, err, model.ErrVideoNotFound)
}

func TestGetVideoDetails_EmptyID(t *testing.T) {
	uc := usecase.NewVideoUseCase(new(MockYouTubeRepo))
	_, err := uc.GetVideoDetails(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrMalformedInput)
}

func TestLoadComments(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	repo.On("GetCommentThreads", mock.Anything, commentsReq("vid-1")).
		Return([]dto.YouTubeCommentThread{}, nil).Once()

	result, err := uc.LoadComments(context.Background(), "vid-1")
	require.NoError(t, err)
	assert.True(t, result.Available, "zero comments is not the same as unavailable")
	assert.Empty(t, result.Comments)
}

func TestLoadComments_Unavailable(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	repo.On("GetCommentThreads", mock.Anything, mock.Anything).Return(nil, errors.New("forbidden")).Once()

	result, err := uc.LoadComments(context.Background(), "vid-1")
	assert.ErrorIs(t, err, model.ErrCommentsUnavailable)
	assert.False(t, result.Available)
	assert.Equal(t, "vid-1", result.VideoID)
	assert.Empty(t, result.Comments)
}

func TestRenderComments(t *testing.T) {
	repo := new(MockYouTubeRepo)
	uc := usecase.NewVideoUseCase(repo)

	repo.On("GetCommentThreads", mock.Anything, mock.Anything).
		Return([]dto.YouTubeCommentThread{threadWithReplies("c1", 5)}, nil).Times(3)

	view, err := uc.RenderComments(context.Background(), "vid-1", commenttree.NewDisclosure())
	require.NoError(t, err)
	assert.True(t, view.Available)
	assert.Equal(t, 1, view.Total)
	assert.Len(t, view.Comments[0].Replies, 3)

	view, err = uc.RenderComments(context.Background(), "vid-1", commenttree.NewDisclosure().ToggleExpanded("c1"))
	require.NoError(t, err)
	assert.Len(t, view.Comments[0].Replies, 5)

	view, err = uc.RenderComments(context.Background(), "vid-1", commenttree.NewDisclosure().ToggleReplies("c1", 0))
	require.NoError(t, err)
	assert.Empty(t, view.Comments[0].Replies)
	assert.Equal(t, int64(5), view.Comments[0].ReplyCount, "hiding keeps the underlying count")
	repo.AssertExpectations(t)
}

func TestComputeEngagement(t *testing.T) {
	e := usecase.ComputeEngagement(model.VideoStatistics{ViewCount: 1000, LikeCount: 50, CommentCount: 10})
	assert.Equal(t, 6.0, e.EngagementRate)
	assert.Equal(t, []int64{1000, 50, 10}, e.Chart.Values)
	assert.Equal(t, "Engagement Metrics", e.Chart.Title)

	e = usecase.ComputeEngagement(model.VideoStatistics{ViewCount: 3, LikeCount: 1})
	assert.Equal(t, 33.33, e.EngagementRate)

	e = usecase.ComputeEngagement(model.VideoStatistics{LikeCount: 5})
	assert.Equal(t, 0.0, e.EngagementRate)
}

func TestBuildVideoCards(t *testing.T) {
	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	cards := usecase.BuildVideoCards([]model.VideoSummary{
		{ID: "a", Snippet: model.VideoSnippet{ChannelTitle: "traversy", PublishedAt: now.Add(-3 * time.Hour)},
			Statistics: model.VideoStatistics{ViewCount: 999}},
		{ID: "b"},
	}, now)

	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].ID)
	assert.Equal(t, "999", cards[0].Display.Views)
	assert.Equal(t, "3h ago", cards[0].Display.PublishedAgo)
	assert.Equal(t, "T", cards[0].Display.ChannelInitial)
	assert.Equal(t, "C", cards[1].Display.ChannelInitial)
	assert.Empty(t, cards[1].Display.PublishedAgo)
}
