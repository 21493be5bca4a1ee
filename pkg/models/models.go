package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	PostID    uuid.UUID `bson:"post_id" json:"post_id"`
	ParentID  uuid.UUID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	Published time.Time `bson:"published" json:"published"`
}

// Verdict is the moderation result for a single comment.
type Verdict struct {
	CommentID   uuid.UUID `json:"comment_id"`
	Profane     bool      `json:"profane"`
	Profanities []string  `json:"profanities"`
	Censored    string    `json:"censored,omitempty"`
}

// WordList carries words of the profanity list or the allow-list.
type WordList struct {
	Words []string `json:"words"`
}

type WordCheck struct {
	Word    string `json:"word"`
	Profane bool   `json:"profane"`
}
