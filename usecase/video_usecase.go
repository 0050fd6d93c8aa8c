package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"yt-dashboard/domain/commenttree"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/logger"
	"yt-dashboard/infrastructure/utils"
)

const (
	defaultCommentThreads = 20
	commentOrder          = "relevance"
)

// IVideoUseCase defines the video detail operations
type IVideoUseCase interface {
	GetVideoDetails(ctx context.Context, videoID string) (*dto.VideoDetailResponse, error)
	LoadComments(ctx context.Context, videoID string) (dto.CommentsResult, error)
	RenderComments(ctx context.Context, videoID string, disclosure commenttree.Disclosure) (*commenttree.View, error)
}

// VideoUseCase implements IVideoUseCase
type VideoUseCase struct {
	youtubeRepo repository.IYouTube
	now         func() time.Time
}

// NewVideoUseCase creates a new video use case instance
func NewVideoUseCase(youtubeRepo repository.IYouTube) IVideoUseCase {
	return &VideoUseCase{youtubeRepo: youtubeRepo, now: utils.GetCurrentTime}
}

// GetVideoDetails loads the video and its comments concurrently. Comments
// that cannot be loaded are reported as unavailable and never fail the call.
func (u *VideoUseCase) GetVideoDetails(ctx context.Context, videoID string) (*dto.VideoDetailResponse, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", model.ErrMalformedInput)
	}

	var (
		video    *model.YouTubeVideo
		comments dto.CommentsResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := u.youtubeRepo.GetVideoDetails(gctx, videoID)
		if err != nil {
			return fmt.Errorf("failed to get video details: %w", err)
		}
		video = v
		return nil
	})
	g.Go(func() error {
		comments, _ = u.LoadComments(gctx, videoID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.VideoDetailResponse{
		Video:      video,
		Display:    videoDisplay(video.Snippet, video.Statistics, video.Duration, u.now(), true),
		Engagement: ComputeEngagement(video.Statistics),
		Comments:   comments,
	}, nil
}

// LoadComments builds the comment tree of a video. On failure the result is
// still usable: Available is false and Comments is empty.
func (u *VideoUseCase) LoadComments(ctx context.Context, videoID string) (dto.CommentsResult, error) {
	result := dto.CommentsResult{VideoID: videoID, Comments: []model.CommentNode{}}

	threads, err := u.youtubeRepo.GetCommentThreads(ctx, &dto.YouTubeCommentListRequest{
		VideoID:    videoID,
		MaxResults: defaultCommentThreads,
		Order:      commentOrder,
	})
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			WithField("videoId", videoID).
			Warn("Comments unavailable")
		return result, fmt.Errorf("%w: %w", model.ErrCommentsUnavailable, err)
	}

	result.Available = true
	result.Comments = commenttree.Build(threads)
	return result, nil
}

// RenderComments loads comments and renders them under disclosure
func (u *VideoUseCase) RenderComments(ctx context.Context, videoID string, disclosure commenttree.Disclosure) (*commenttree.View, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is required", model.ErrMalformedInput)
	}
	result, _ := u.LoadComments(ctx, videoID)
	return &commenttree.View{
		VideoID:   videoID,
		Available: result.Available,
		Total:     len(result.Comments),
		Comments:  commenttree.Render(result.Comments, disclosure, u.now()),
	}, nil
}

// ComputeEngagement derives the engagement overview of a video.
// The rate is (likes+comments)/views in percent, two decimals, 0 without views.
func ComputeEngagement(stats model.VideoStatistics) model.Engagement {
	e := model.Engagement{
		Views:    stats.ViewCount,
		Likes:    stats.LikeCount,
		Comments: stats.CommentCount,
		Chart: model.Chart{
			Title:  "Engagement Metrics",
			Labels: []string{"Views", "Likes", "Comments"},
			Values: []int64{stats.ViewCount, stats.LikeCount, stats.CommentCount},
		},
	}
	if stats.ViewCount > 0 {
		rate := float64(stats.LikeCount+stats.CommentCount) / float64(stats.ViewCount) * 100
		e.EngagementRate = math.Round(rate*100) / 100
	}
	return e
}

// BuildVideoCards decorates search results with display strings
func BuildVideoCards(videos []model.VideoSummary, now time.Time) []dto.VideoCard {
	cards := make([]dto.VideoCard, 0, len(videos))
	for _, v := range videos {
		cards = append(cards, dto.VideoCard{
			VideoSummary: v,
			Display:      videoDisplay(v.Snippet, v.Statistics, "", now, false),
		})
	}
	return cards
}

func videoDisplay(snippet model.VideoSnippet, stats model.VideoStatistics, duration string, now time.Time, long bool) dto.VideoDisplay {
	d := dto.VideoDisplay{
		Views:          utils.FormatCount(stats.ViewCount),
		Likes:          utils.FormatCount(stats.LikeCount),
		Comments:       utils.FormatCount(stats.CommentCount),
		Duration:       utils.FormatDuration(duration),
		ChannelInitial: utils.Initial(snippet.ChannelTitle, "C"),
	}
	if !snippet.PublishedAt.IsZero() {
		if long {
			d.PublishedAgo = utils.TimeAgoLong(now.Sub(snippet.PublishedAt))
		} else {
			d.PublishedAgo = utils.TimeAgo(now.Sub(snippet.PublishedAt))
		}
	}
	return d
}
