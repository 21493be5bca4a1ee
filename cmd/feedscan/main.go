// Command feedscan reports RSS and Atom feed items that contain profanity.
// It prints one JSON finding per line and exits with status 1 if any item
// is profane.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/feedscan"
	"profanity/pkg/logger"
	"profanity/pkg/moderator"
	"profanity/pkg/storage/memdb"
)

func main() {
	var (
		corpusPath string
		logLevel   string
		timeout    time.Duration
		digits     bool
	)

	flag.StringVar(&corpusPath, "corpus", "", "Path to JSON word list, the built-in list is used if empty")
	flag.StringVar(&logLevel, "log", "warn", "Log level: debug, info, warn, error.")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "Download timeout per feed.")
	flag.BoolVar(&digits, "digits", false, "Censor digits attached to profanities.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] feed-url...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	logger.SetLevel(logLevel)

	f := censor.New()
	if corpusPath != "" {
		if err := f.LoadFromJSON(corpusPath); err != nil {
			log.Fatalf("[feedscan] failed to load word list: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := moderator.New(f, memdb.New())
	if err := m.Load(ctx); err != nil {
		log.Fatalf("[feedscan] %v", err)
	}

	opts := moderator.DefaultOptions
	opts.DigitAware = digits
	findings, err := feedscan.New(m, timeout, opts).ScanAll(ctx, flag.Args())

	enc := json.NewEncoder(os.Stdout)
	for _, finding := range findings {
		if err := enc.Encode(finding); err != nil {
			log.Fatalf("[feedscan] failed to write finding: %v", err)
		}
	}

	switch {
	case len(findings) > 0:
		os.Exit(1)
	case err != nil:
		os.Exit(3)
	}
}
