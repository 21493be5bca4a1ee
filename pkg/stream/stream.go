// Package stream moderates comments arriving on a Kafka topic and publishes
// a verdict for each of them.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/models"
	"profanity/pkg/moderator"
)

// Reader is satisfied by *kafka.Reader.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Writer is satisfied by *kafka.Writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Auditor records profane comments for later review.
type Auditor interface {
	Record(ctx context.Context, comment models.Comment, verdict models.Verdict) error
}

type Config struct {
	Brokers  []string
	InTopic  string
	OutTopic string
	GroupID  string
	Workers  int
}

// NewReader returns a consumer group reader of cfg.InTopic.
func NewReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.InTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
}

// NewWriter returns a writer of verdicts to cfg.OutTopic. Messages with the
// same comment ID land on the same partition.
func NewWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.OutTopic,
		Balancer: &kafka.Hash{},
	}
}

type Service struct {
	m       *moderator.Moderator
	r       Reader
	w       Writer
	audit   Auditor
	workers int
	opts    moderator.Options
}

// New returns a Service running workers goroutines. audit may be nil.
func New(m *moderator.Moderator, r Reader, w Writer, audit Auditor, workers int, opts moderator.Options) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{m: m, r: r, w: w, audit: audit, workers: workers, opts: opts}
}

// Run consumes messages until ctx is cancelled or the reader is closed.
func (s *Service) Run(ctx context.Context) {
	jobs := make(chan kafka.Message, s.workers*5)

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for workerID := 0; workerID < s.workers; workerID++ {
		go func(id int) {
			defer wg.Done()
			s.worker(ctx, jobs, id)
		}(workerID)
	}

	log.Info("[stream] accepting comments...")
	for {
		msg, err := s.r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				break
			}
			log.Errorf("[stream] failed to read message from Kafka: %v", err)
			continue
		}
		log.Debugf("[stream] received message at offset %d", msg.Offset)

		select {
		case jobs <- msg:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	close(jobs)
	wg.Wait()
	log.Info("[stream] stopped")
}

func (s *Service) worker(ctx context.Context, jobs <-chan kafka.Message, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Infof("[stream][workerID:%d] context cancelled, exiting worker", workerID)
			return

		case msg, ok := <-jobs:
			if !ok {
				log.Infof("[stream][workerID:%d] jobs channel closed, exiting worker", workerID)
				return
			}
			if err := s.handle(ctx, msg); err != nil {
				log.Errorf("[stream][workerID:%d] %v", workerID, err)
			}
		}
	}
}

// handle moderates one message. Malformed comments are skipped.
func (s *Service) handle(ctx context.Context, msg kafka.Message) error {
	var comment models.Comment
	if err := json.Unmarshal(msg.Value, &comment); err != nil {
		return fmt.Errorf("skipping malformed comment at offset %d: %w", msg.Offset, err)
	}

	verdict := s.m.Moderate(comment, s.opts)
	b, err := json.Marshal(verdict)
	if err != nil {
		return err
	}

	wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = s.w.WriteMessages(wctx, kafka.Message{Key: []byte(comment.ID.String()), Value: b})
	if err != nil {
		return fmt.Errorf("failed to write verdict to Kafka: %w", err)
	}

	if verdict.Profane && s.audit != nil {
		if err := s.audit.Record(ctx, comment, verdict); err != nil {
			return fmt.Errorf("failed to record profane comment %v: %w", comment.ID, err)
		}
	}
	log.Debugf("[stream] verdict for comment %v sent, profane: %v", comment.ID, verdict.Profane)

	return nil
}
