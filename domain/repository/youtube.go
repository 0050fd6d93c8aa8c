package repository

import (
	"context"

	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
)

// IYouTube defines the upstream video platform operations the dashboard needs
type IYouTube interface {
	// SearchVideos returns one page of keyword search hits, in upstream ranking order
	SearchVideos(ctx context.Context, req *dto.YouTubeSearchRequest) (*dto.YouTubeSearchPage, error)
	// GetVideoStatistics fetches statistics for all ids in a single batched call
	GetVideoStatistics(ctx context.Context, videoIDs []string) ([]dto.YouTubeVideoStatistics, error)
	GetVideoDetails(ctx context.Context, videoID string) (*model.YouTubeVideo, error)
	GetCommentThreads(ctx context.Context, req *dto.YouTubeCommentListRequest) ([]dto.YouTubeCommentThread, error)
}
