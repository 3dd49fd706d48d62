package models

import (
	"time"
)

// Comment is a single comment embedded in an article.
// The article owns its comments; no other entity references them.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddCommentRequest is the payload for appending a comment
type AddCommentRequest struct {
	Text string `json:"text"`
}

// CommentView is a comment with its author projection joined in
type CommentView struct {
	Comment
	Author *PublicProfile `json:"author,omitempty"`
}
