package model

import "time"

// Thumbnail is a single thumbnail rendition
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails holds the renditions returned by the platform
type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

// VideoSnippet is the search fragment of a video
type VideoSnippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channel_title"`
	ChannelID    string     `json:"channel_id"`
	PublishedAt  time.Time  `json:"published_at"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

// VideoStatistics holds the engagement counters of a video.
// The zero value is the "empty statistics" object used when the
// statistics fragment could not be fetched.
type VideoStatistics struct {
	ViewCount     int64 `json:"view_count"`
	LikeCount     int64 `json:"like_count"`
	CommentCount  int64 `json:"comment_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

// VideoSummary is one searched video: search fragment merged with statistics
type VideoSummary struct {
	ID         string          `json:"id"`
	Snippet    VideoSnippet    `json:"snippet"`
	Statistics VideoStatistics `json:"statistics"`
}

// YouTubeVideo represents the full detail of a single video
type YouTubeVideo struct {
	ID         string          `json:"id"`
	Snippet    VideoSnippet    `json:"snippet"`
	Statistics VideoStatistics `json:"statistics"`
	Duration   string          `json:"duration"`
	Tags       []string        `json:"tags"`
	Category   string          `json:"category"`
}

// Engagement is the derived engagement overview of a video
type Engagement struct {
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	EngagementRate float64 `json:"engagement_rate"`
	Chart          Chart   `json:"chart"`
}

// Chart is a single-series bar chart description
type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}
