// Package audit indexes profane comments in Elasticsearch so moderators can
// search them later.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/models"
)

var ErrIndexing = errors.New("failed to index document")

// Record is the indexed document.
type Record struct {
	CommentID   string    `json:"comment_id"`
	PostID      string    `json:"post_id"`
	Author      string    `json:"author"`
	Profanities []string  `json:"profanities"`
	Censored    string    `json:"censored"`
	Published   time.Time `json:"published"`
	Recorded    time.Time `json:"recorded"`
}

type Index struct {
	es    *elasticsearch.Client
	index string
}

func New(nodes []string, index string) (*Index, error) {
	if index == "" {
		return nil, errors.New("index name is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: nodes})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Index{es: es, index: index}, nil
}

// Record indexes the comment under its ID, replacing an earlier record of the
// same comment.
func (i *Index) Record(ctx context.Context, comment models.Comment, verdict models.Verdict) error {
	doc := Record{
		CommentID:   comment.ID.String(),
		PostID:      comment.PostID.String(),
		Author:      comment.Author,
		Profanities: verdict.Profanities,
		Censored:    verdict.Censored,
		Published:   comment.Published,
		Recorded:    time.Now().UTC(),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := i.es.Index(
		i.index,
		bytes.NewReader(b),
		i.es.Index.WithDocumentID(doc.CommentID),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexing, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexing, res.Status())
	}
	log.Debugf("[audit] comment %s indexed in %s", doc.CommentID, i.index)

	return nil
}
