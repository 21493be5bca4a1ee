package feedscan

import (
	"context"
	"net/http"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/h2non/gock"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/moderator"
	"profanity/pkg/storage/memdb"
)

const feedURL = "http://feeds.example.com"

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Local News</title>
  <link>http://feeds.example.com</link>
  <description>News from Scunthorpe</description>
  <item>
    <title>Scunthorpe council approves new park</title>
    <link>http://feeds.example.com/1</link>
    <description>&lt;p&gt;Residents welcomed the plan.&lt;/p&gt;</description>
  </item>
  <item>
    <title>Mayor says traffic is shit</title>
    <link>http://feeds.example.com/2</link>
    <description>Commuters agree.</description>
  </item>
  <item>
    <title>Weekend weather</title>
    <link>http://feeds.example.com/3</link>
    <description>&lt;p&gt;Expect a &lt;b&gt;fucking&lt;/b&gt; downpour.&lt;/p&gt;</description>
  </item>
</channel>
</rss>`

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func newScanner(t *testing.T) *Scanner {
	t.Helper()

	f, err := censor.NewWithWords([]string{"shit", "fucking", "cunt"})
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}
	m := moderator.New(f, memdb.New())
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("failed to load moderator: %v", err)
	}

	return New(m, 3*time.Second, moderator.DefaultOptions)
}

func TestScanner_Scan(t *testing.T) {
	defer gock.Off()

	gock.New(feedURL).
		Get("/news.rss").
		Reply(http.StatusOK).
		SetHeader("Content-Type", "application/rss+xml").
		BodyString(testFeed)

	s := newScanner(t)
	got, err := s.Scan(context.Background(), feedURL+"/news.rss")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("want 2 findings, got %d: %+v", len(got), got)
	}
	if got[0].Link != "http://feeds.example.com/2" || got[0].Feed != "Local News" {
		t.Errorf("unexpected first finding %+v", got[0])
	}
	if want := []string{"shit"}; !reflect.DeepEqual(got[0].Profanities, want) {
		t.Errorf("want profanities %v, got %v", want, got[0].Profanities)
	}
	if want := "Mayor says traffic is ****\nCommuters agree."; got[0].Censored != want {
		t.Errorf("want censored %q, got %q", want, got[0].Censored)
	}
	if want := []string{"fucking"}; !reflect.DeepEqual(got[1].Profanities, want) {
		t.Errorf("want profanities %v, got %v", want, got[1].Profanities)
	}
}

func TestScanner_ScanAll(t *testing.T) {
	defer gock.Off()

	gock.New(feedURL).
		Get("/news.rss").
		Reply(http.StatusOK).
		BodyString(testFeed)
	gock.New(feedURL).
		Get("/missing.rss").
		Reply(http.StatusNotFound)

	s := newScanner(t)
	got, err := s.ScanAll(context.Background(), []string{feedURL + "/missing.rss", feedURL + "/news.rss"})
	if err == nil {
		t.Error("want error for missing feed, got nil")
	}
	if len(got) != 2 {
		t.Errorf("want 2 findings from the healthy feed, got %d", len(got))
	}
}

func Test_plainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  plain text ", want: "plain text"},
		{in: "<p>Expect a <b>wet</b> day.</p>", want: "Expect a wet day."},
	}
	for _, tt := range tests {
		if got := plainText(tt.in); got != tt.want {
			t.Errorf("plainText(%q): want %q, got %q", tt.in, tt.want, got)
		}
	}
}
