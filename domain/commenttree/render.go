package commenttree

import (
	"fmt"
	"time"

	"yt-dashboard/domain/model"
	"yt-dashboard/infrastructure/utils"
)

// RenderedComment is a comment ready for display under a given Disclosure
type RenderedComment struct {
	ID             string            `json:"id"`
	AuthorName     string            `json:"author_name"`
	AuthorAvatar   string            `json:"author_avatar"`
	AuthorInitial  string            `json:"author_initial"`
	IsCreator      bool              `json:"is_creator"`
	Text           string            `json:"text"`
	PublishedAgo   string            `json:"published_ago"`
	LikeLabel      string            `json:"like_label,omitempty"`
	Depth          int               `json:"depth"`
	IsReply        bool              `json:"is_reply"`
	CanReply       bool              `json:"can_reply"`
	ReplyCount     int64             `json:"reply_count"`
	ReplyLabel     string            `json:"reply_label,omitempty"`
	ToggleLabel    string            `json:"toggle_label,omitempty"`
	RepliesVisible bool              `json:"replies_visible"`
	Replies        []RenderedComment `json:"replies"`
	HiddenReplies  int               `json:"hidden_replies"`
	ExpandLabel    string            `json:"expand_label,omitempty"`
}

// Render applies d to nodes. It never fetches or mutates anything.
func Render(nodes []model.CommentNode, d Disclosure, now time.Time) []RenderedComment {
	return renderLevel(nodes, d, now, 0)
}

func renderLevel(nodes []model.CommentNode, d Disclosure, now time.Time, depth int) []RenderedComment {
	out := make([]RenderedComment, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, renderNode(n, d, now, depth))
	}
	return out
}

func renderNode(n model.CommentNode, d Disclosure, now time.Time, depth int) RenderedComment {
	r := RenderedComment{
		ID:            n.ID,
		AuthorName:    n.Author.DisplayName,
		AuthorAvatar:  n.Author.ProfileImageURL,
		AuthorInitial: utils.Initial(n.Author.DisplayName, "U"),
		IsCreator:     n.Author.ChannelID != "",
		Text:          n.Text,
		PublishedAgo:  utils.Since(n.PublishedAt, now),
		Depth:         depth,
		IsReply:       n.IsReply || depth > 0,
		CanReply:      depth < MaxDepth,
		ReplyCount:    n.ReplyCount(),
		Replies:       []RenderedComment{},
	}
	if n.LikeCount > 0 {
		r.LikeLabel = utils.FormatCount(n.LikeCount)
	}
	if r.ReplyCount == 0 {
		return r
	}

	r.ReplyLabel = ReplyLabel(r.ReplyCount)
	r.RepliesVisible = d.RepliesVisible(n.ID, depth)
	if r.RepliesVisible {
		r.ToggleLabel = "Hide " + r.ReplyLabel
	} else {
		r.ToggleLabel = "Show " + r.ReplyLabel
	}
	if !r.RepliesVisible || depth >= MaxDepth {
		return r
	}

	shown := n.Replies
	if len(n.Replies) > InitialReplies {
		if d.Expanded(n.ID) {
			r.ExpandLabel = "Show less"
		} else {
			shown = n.Replies[:InitialReplies]
			r.HiddenReplies = len(n.Replies) - InitialReplies
			r.ExpandLabel = fmt.Sprintf("Show %d more replies", r.HiddenReplies)
		}
	}
	r.Replies = renderLevel(shown, d, now, depth+1)
	return r
}

// ReplyLabel pluralizes a reply count: "1 reply", "4 replies"
func ReplyLabel(count int64) string {
	if count == 1 {
		return "1 reply"
	}
	return fmt.Sprintf("%d replies", count)
}

// View is a rendered comment section of one video
type View struct {
	VideoID   string            `json:"video_id"`
	Available bool              `json:"available"`
	Total     int               `json:"total"`
	Comments  []RenderedComment `json:"comments"`
}
