package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/metrics"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	defaultSearchPageSize  = 12
	defaultCommentPageSize = 20
)

// Client represents YouTube Data API client
type Client struct {
	service         *youtube.Service
	limiter         *rate.Limiter
	recorder        metrics.IRecorder
	timeout         time.Duration
	searchPageSize  int64
	commentPageSize int64
}

// Config represents YouTube API configuration
type Config struct {
	APIKey            string        `json:"api_key"`
	Endpoint          string        `json:"endpoint"` // Overrides the public API base URL, mostly for tests
	SearchPageSize    int64         `json:"search_page_size"`
	CommentPageSize   int64         `json:"comment_page_size"`
	RequestsPerSecond float64       `json:"requests_per_second"` // <= 0 disables client side throttling
	Burst             int           `json:"burst"`
	Timeout           time.Duration `json:"timeout"`

	HTTPClient *http.Client       `json:"-"`
	Recorder   metrics.IRecorder `json:"-"`
}

// NewYouTubeClient creates a read-only, API key authenticated YouTube client
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("youtube api key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}
	if config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(config.HTTPClient))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		service:         service,
		limiter:         rate.NewLimiter(limit, burst),
		recorder:        config.Recorder,
		timeout:         config.Timeout,
		searchPageSize:  config.SearchPageSize,
		commentPageSize: config.CommentPageSize,
	}
	if c.recorder == nil {
		c.recorder = metrics.Nop{}
	}
	if c.searchPageSize <= 0 {
		c.searchPageSize = defaultSearchPageSize
	}
	if c.commentPageSize <= 0 {
		c.commentPageSize = defaultCommentPageSize
	}
	return c, nil
}

// call waits for the limiter, applies the per request timeout and records the outcome
func (c *Client) call(ctx context.Context, endpoint string, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		c.recorder.ObserveUpstream(endpoint, err, 0)
		return err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	c.recorder.ObserveUpstream(endpoint, err, time.Since(start))
	return err
}

// SearchVideos runs one keyword search page (video results only)
func (c *Client) SearchVideos(ctx context.Context, req *dto.YouTubeSearchRequest) (*dto.YouTubeSearchPage, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = c.searchPageSize
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(req.Q).
		Type("video").
		MaxResults(maxResults)
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	var response *youtube.SearchListResponse
	err := c.call(ctx, metrics.EndpointSearch, func(ctx context.Context) error {
		var err error
		response, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search videos: %w", model.ErrSearchFailure, err)
	}

	page := &dto.YouTubeSearchPage{
		Items:         make([]dto.YouTubeSearchItem, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
		PrevPageToken: response.PrevPageToken,
	}
	if response.PageInfo != nil {
		page.TotalResults = response.PageInfo.TotalResults
	}
	for _, item := range response.Items {
		if item == nil {
			continue
		}
		var id string
		if item.Id != nil {
			id = item.Id.VideoId
		}
		page.Items = append(page.Items, dto.YouTubeSearchItem{
			ID:      id,
			Snippet: convertSearchSnippet(item.Snippet),
		})
	}
	return page, nil
}

// GetVideoStatistics fetches statistics for all ids in one batched request.
// Items come back in upstream order, which is not guaranteed to match ids.
func (c *Client) GetVideoStatistics(ctx context.Context, ids []string) ([]dto.YouTubeVideoStatistics, error) {
	if len(ids) == 0 {
		return []dto.YouTubeVideoStatistics{}, nil
	}

	call := c.service.Videos.List([]string{"statistics"}).Id(strings.Join(ids, ","))

	var response *youtube.VideoListResponse
	err := c.call(ctx, metrics.EndpointStats, func(ctx context.Context) error {
		var err error
		response, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get video statistics: %w", model.ErrStatsFailure, err)
	}

	stats := make([]dto.YouTubeVideoStatistics, 0, len(response.Items))
	for _, video := range response.Items {
		if video == nil {
			continue
		}
		stats = append(stats, dto.YouTubeVideoStatistics{
			ID:         video.Id,
			Statistics: convertStatistics(video.Statistics),
		})
	}
	return stats, nil
}

// GetVideoDetails retrieves details for a specific video
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error) {
	call := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).Id(videoID)

	var response *youtube.VideoListResponse
	err := c.call(ctx, metrics.EndpointDetails, func(ctx context.Context) error {
		var err error
		response, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", model.ErrVideoNotFound, videoID)
		}
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(response.Items) == 0 || response.Items[0] == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrVideoNotFound, videoID)
	}

	video := convertToYouTubeVideo(response.Items[0])
	return &video, nil
}

// GetCommentThreads lists the top-level comments of a video with their embedded replies
func (c *Client) GetCommentThreads(ctx context.Context, req *dto.YouTubeCommentListRequest) ([]dto.YouTubeCommentThread, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = c.commentPageSize
	}
	order := req.Order
	if order == "" {
		order = "relevance"
	}

	call := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(req.VideoID).
		MaxResults(maxResults).
		Order(order)

	var response *youtube.CommentThreadListResponse
	err := c.call(ctx, metrics.EndpointComments, func(ctx context.Context) error {
		var err error
		response, err = call.Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get comment threads: %w", model.ErrCommentsUnavailable, err)
	}

	threads := make([]dto.YouTubeCommentThread, 0, len(response.Items))
	for _, item := range response.Items {
		if item == nil || item.Snippet == nil {
			continue
		}
		thread := dto.YouTubeCommentThread{
			ID:              item.Id,
			TopLevelComment: convertComment(item.Snippet.TopLevelComment),
			TotalReplyCount: item.Snippet.TotalReplyCount,
		}
		if item.Replies != nil && len(item.Replies.Comments) > 0 {
			thread.Replies = make([]dto.YouTubeComment, 0, len(item.Replies.Comments))
			for _, reply := range item.Replies.Comments {
				if reply == nil {
					continue
				}
				thread.Replies = append(thread.Replies, convertComment(reply))
			}
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func convertToYouTubeVideo(video *youtube.Video) model.YouTubeVideo {
	ytVideo := model.YouTubeVideo{
		ID:         video.Id,
		Statistics: convertStatistics(video.Statistics),
		Tags:       []string{},
	}
	if video.Snippet != nil {
		ytVideo.Snippet = model.VideoSnippet{
			Title:        video.Snippet.Title,
			Description:  video.Snippet.Description,
			ChannelTitle: video.Snippet.ChannelTitle,
			ChannelID:    video.Snippet.ChannelId,
			PublishedAt:  parseTime(video.Snippet.PublishedAt),
			Thumbnails:   convertThumbnails(video.Snippet.Thumbnails),
		}
		if video.Snippet.Tags != nil {
			ytVideo.Tags = video.Snippet.Tags
		}
		ytVideo.Category = video.Snippet.CategoryId
	}
	if video.ContentDetails != nil {
		ytVideo.Duration = video.ContentDetails.Duration
	}
	return ytVideo
}

func convertSearchSnippet(s *youtube.SearchResultSnippet) model.VideoSnippet {
	if s == nil {
		return model.VideoSnippet{}
	}
	return model.VideoSnippet{
		Title:        s.Title,
		Description:  s.Description,
		ChannelTitle: s.ChannelTitle,
		ChannelID:    s.ChannelId,
		PublishedAt:  parseTime(s.PublishedAt),
		Thumbnails:   convertThumbnails(s.Thumbnails),
	}
}

func convertStatistics(s *youtube.VideoStatistics) model.VideoStatistics {
	if s == nil {
		return model.VideoStatistics{}
	}
	return model.VideoStatistics{
		ViewCount:     int64(s.ViewCount),
		LikeCount:     int64(s.LikeCount),
		CommentCount:  int64(s.CommentCount),
		FavoriteCount: int64(s.FavoriteCount),
	}
}

func convertThumbnails(t *youtube.ThumbnailDetails) model.Thumbnails {
	if t == nil {
		return model.Thumbnails{}
	}
	return model.Thumbnails{
		Default: convertThumbnail(t.Default),
		Medium:  convertThumbnail(t.Medium),
		High:    convertThumbnail(t.High),
	}
}

func convertThumbnail(t *youtube.Thumbnail) model.Thumbnail {
	if t == nil {
		return model.Thumbnail{}
	}
	return model.Thumbnail{URL: t.Url, Width: int(t.Width), Height: int(t.Height)}
}

func convertComment(comment *youtube.Comment) dto.YouTubeComment {
	if comment == nil {
		return dto.YouTubeComment{}
	}
	out := dto.YouTubeComment{ID: comment.Id}
	if s := comment.Snippet; s != nil {
		out.AuthorDisplayName = s.AuthorDisplayName
		out.AuthorProfileImageURL = s.AuthorProfileImageUrl
		out.TextDisplay = s.TextDisplay
		out.PublishedAt = s.PublishedAt
		out.LikeCount = s.LikeCount
		if s.AuthorChannelId != nil {
			out.AuthorChannelID = s.AuthorChannelId.Value
		}
	}
	return out
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
