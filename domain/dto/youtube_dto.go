package dto

import "yt-dashboard/domain/model"

// YouTubeSearchRequest represents request for one search page
type YouTubeSearchRequest struct {
	Q          string `json:"q" url:"q"`
	PageToken  string `json:"page_token,omitempty" url:"page_token,omitempty"`
	MaxResults int64  `json:"max_results,omitempty" url:"-"`
}

// YouTubeSearchItem is one search hit before statistics are merged in
type YouTubeSearchItem struct {
	ID      string             `json:"id"`
	Snippet model.VideoSnippet `json:"snippet"`
}

// YouTubeSearchPage is the upstream search response
type YouTubeSearchPage struct {
	Items         []YouTubeSearchItem `json:"items"`
	NextPageToken string              `json:"next_page_token,omitempty"`
	PrevPageToken string              `json:"prev_page_token,omitempty"`
	TotalResults  int64               `json:"total_results"` // Upstream estimate only, never exact
}

// YouTubeVideoStatistics is one item of the batched statistics response
type YouTubeVideoStatistics struct {
	ID         string                `json:"id"`
	Statistics model.VideoStatistics `json:"statistics"`
}

// YouTubeCommentListRequest represents request for listing comment threads
type YouTubeCommentListRequest struct {
	VideoID    string `json:"video_id" binding:"required"`
	MaxResults int64  `json:"max_results,omitempty"`
	Order      string `json:"order,omitempty"` // time, relevance
}

// YouTubeComment is a single upstream comment snippet
type YouTubeComment struct {
	ID                    string `json:"id"`
	AuthorDisplayName     string `json:"author_display_name"`
	AuthorProfileImageURL string `json:"author_profile_image_url"`
	AuthorChannelID       string `json:"author_channel_id,omitempty"`
	TextDisplay           string `json:"text_display"`
	PublishedAt           string `json:"published_at"`
	LikeCount             int64  `json:"like_count"`
}

// YouTubeCommentThread is a top-level comment with its embedded replies page
type YouTubeCommentThread struct {
	ID              string           `json:"id"`
	TopLevelComment YouTubeComment   `json:"top_level_comment"`
	TotalReplyCount int64            `json:"total_reply_count"`
	Replies         []YouTubeComment `json:"replies,omitempty"` // nil when upstream embedded no replies
}

// SearchSummary is the results header shown above a page of videos
type SearchSummary struct {
	TotalVideos int   `json:"total_videos"`
	TotalViews  int64 `json:"total_views"`
}

// SearchResult is the merged output of one aggregation call
type SearchResult struct {
	Keyword          string               `json:"keyword"`
	Videos           []model.VideoSummary `json:"videos"`
	NextPageToken    string               `json:"next_page_token,omitempty"`
	PrevPageToken    string               `json:"prev_page_token,omitempty"`
	StatsUnavailable bool                 `json:"stats_unavailable"`
	Summary          SearchSummary        `json:"summary"`
}

// CommentsResult distinguishes "comments unavailable" from "zero comments"
type CommentsResult struct {
	VideoID   string              `json:"video_id"`
	Available bool                `json:"available"`
	Comments  []model.CommentNode `json:"comments"`
}

// VideoDetailResponse is everything the detail view needs in one payload
type VideoDetailResponse struct {
	Video      *model.YouTubeVideo `json:"video"`
	Display    VideoDisplay        `json:"display"`
	Engagement model.Engagement    `json:"engagement"`
	Comments   CommentsResult      `json:"comments"`
}

// VideoDisplay holds the preformatted strings of a video card or detail header
type VideoDisplay struct {
	Views          string `json:"views"`
	Likes          string `json:"likes"`
	Comments       string `json:"comments"`
	Duration       string `json:"duration,omitempty"`
	PublishedAgo   string `json:"published_ago"`
	ChannelInitial string `json:"channel_initial"`
}

// VideoCard is a search result decorated with display strings
type VideoCard struct {
	model.VideoSummary
	Display VideoDisplay `json:"display"`
}

// SessionCommand is the body of session search requests
type SessionCommand struct {
	Keyword string `json:"keyword" binding:"required"`
}

// PageLinks are ready-made URLs for the pager
type PageLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// SearchPageResponse is one stateless search page as served to the dashboard
type SearchPageResponse struct {
	Keyword          string        `json:"keyword"`
	Videos           []VideoCard   `json:"videos"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
	PrevPageToken    string        `json:"prev_page_token,omitempty"`
	StatsUnavailable bool          `json:"stats_unavailable"`
	Summary          SearchSummary `json:"summary"`
	Links            PageLinks     `json:"links"`
}

// SessionView is a pagination session with everything the pager needs
type SessionView struct {
	Session *model.SearchSession `json:"session"`
	Videos  []VideoCard          `json:"videos"`
	Summary SearchSummary        `json:"summary"`
	HasNext bool                 `json:"has_next"`
	HasPrev bool                 `json:"has_prev"`
	Pages   []int                `json:"pages"` // Pages that can be requested right now
}
