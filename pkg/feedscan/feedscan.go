// Package feedscan screens RSS and Atom feed items for profanity.
package feedscan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/models"
	"profanity/pkg/moderator"
)

// Finding is a feed item that contains profanity.
type Finding struct {
	Feed        string   `json:"feed"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Profanities []string `json:"profanities"`
	Censored    string   `json:"censored"`
}

type Scanner struct {
	m       *moderator.Moderator
	parser  *gofeed.Parser
	timeout time.Duration
	opts    moderator.Options
}

// New returns a Scanner giving each feed timeout to download.
func New(m *moderator.Moderator, timeout time.Duration, opts moderator.Options) *Scanner {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{}

	return &Scanner{m: m, parser: parser, timeout: timeout, opts: opts}
}

// Scan downloads the feed at url and returns its profane items.
func (s *Scanner) Scan(ctx context.Context, url string) ([]Finding, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	var findings []Finding
	for _, item := range feed.Items {
		text := item.Title
		if desc := plainText(item.Description); desc != "" {
			text += "\n" + desc
		}

		verdict := s.m.Moderate(models.Comment{Text: text}, s.opts)
		if !verdict.Profane {
			continue
		}
		findings = append(findings, Finding{
			Feed:        feed.Title,
			Title:       item.Title,
			Link:        item.Link,
			Profanities: verdict.Profanities,
			Censored:    verdict.Censored,
		})
	}
	log.Debugf("[feedscan] %s: %d items, %d profane", url, len(feed.Items), len(findings))

	return findings, nil
}

// ScanAll scans every feed in urls. A feed that fails is logged and skipped,
// the returned error joins all such failures.
func (s *Scanner) ScanAll(ctx context.Context, urls []string) ([]Finding, error) {
	var (
		findings []Finding
		errs     []error
	)
	for _, url := range urls {
		f, err := s.Scan(ctx, url)
		if err != nil {
			log.Warnf("[feedscan] %v", err)
			errs = append(errs, err)
			continue
		}
		findings = append(findings, f...)
	}

	return findings, errors.Join(errs...)
}

// plainText drops the markup of an HTML fragment.
func plainText(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
