// Package commenttree reshapes upstream comment threads into CommentNode
// trees and renders them under a progressive disclosure policy.
package commenttree

import (
	"time"

	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
)

// Build converts comment threads into top-level nodes, keeping upstream order.
// Replies are attached only when the thread reports replies and embedded them;
// otherwise the node keeps its reported TotalReplyCount with no children.
func Build(threads []dto.YouTubeCommentThread) []model.CommentNode {
	nodes := make([]model.CommentNode, 0, len(threads))
	for _, thread := range threads {
		node := toNode(thread.TopLevelComment)
		if node.ID == "" {
			node.ID = thread.ID
		}
		node.TotalReplyCount = thread.TotalReplyCount

		if thread.TotalReplyCount > 0 && len(thread.Replies) > 0 {
			node.Replies = make([]model.CommentNode, 0, len(thread.Replies))
			for _, r := range thread.Replies {
				reply := toNode(r)
				reply.IsReply = true
				reply.ParentID = node.ID
				node.Replies = append(node.Replies, reply)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func toNode(c dto.YouTubeComment) model.CommentNode {
	node := model.CommentNode{
		ID: c.ID,
		Author: model.CommentAuthor{
			DisplayName:     c.AuthorDisplayName,
			ProfileImageURL: c.AuthorProfileImageURL,
			ChannelID:       c.AuthorChannelID,
		},
		Text:      c.TextDisplay,
		LikeCount: c.LikeCount,
		Replies:   []model.CommentNode{},
	}
	if t, err := time.Parse(time.RFC3339, c.PublishedAt); err == nil {
		node.PublishedAt = t
	}
	return node
}
