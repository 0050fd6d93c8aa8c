package model

import "time"

// CommentAuthor identifies who wrote a comment
type CommentAuthor struct {
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
	ChannelID       string `json:"channel_id,omitempty"` // Set for channel owners; rendered as a "Creator" badge
}

// CommentNode represents one comment or reply of a video
type CommentNode struct {
	ID              string        `json:"id"`
	Author          CommentAuthor `json:"author"`
	Text            string        `json:"text"`
	PublishedAt     time.Time     `json:"published_at"`
	LikeCount       int64         `json:"like_count"`
	IsReply         bool          `json:"is_reply"`
	ParentID        string        `json:"parent_id,omitempty"`
	Replies         []CommentNode `json:"replies"`
	TotalReplyCount int64         `json:"total_reply_count"` // Authoritative; may exceed len(Replies)
}

// ReplyCount returns the number of replies a node should advertise
func (c CommentNode) ReplyCount() int64 {
	if n := int64(len(c.Replies)); n > c.TotalReplyCount {
		return n
	}
	return c.TotalReplyCount
}
