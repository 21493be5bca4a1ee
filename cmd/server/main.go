package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/api"
	"profanity/pkg/audit"
	"profanity/pkg/censor"
	"profanity/pkg/logger"
	"profanity/pkg/moderator"
	"profanity/pkg/storage"
	"profanity/pkg/storage/memdb"
	"profanity/pkg/storage/mongo"
	"profanity/pkg/storage/postgres"
	"profanity/pkg/stream"
)

func main() {
	var (
		configPath  string
		corpusPath  string
		storageKind string
		httpAddr    string
		logLevel    string
		kafkaAddr   string
		kafkaTopic  string
		kafkaBatch  int
	)

	flag.StringVar(&configPath, "config", "cmd/server/config.toml", "Path to TOML config file")
	flag.StringVar(&corpusPath, "corpus", "", "Path to JSON word list, the built-in list is used if empty")
	flag.StringVar(&storageKind, "storage", "", "Word list storage: memory, postgres, mongo.")
	flag.StringVar(&httpAddr, "http", "", "HTTP server address in the form 'host:port'.")
	flag.StringVar(&logLevel, "log", "", "Log level: debug, info, warn, error.")
	flag.StringVar(&kafkaAddr, "kafka", "", "Kafka server address in the form 'host:port'.")
	flag.StringVar(&kafkaTopic, "topic", "", "Kafka topic for request logs.")
	flag.IntVar(&kafkaBatch, "batch", 0, "Kafka batch size.")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}

	// Override config with flags if set
	if corpusPath != "" {
		cfg.CorpusPath = corpusPath
	}
	if storageKind != "" {
		cfg.Storage = storageKind
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if kafkaAddr != "" {
		cfg.KafkaAddr = kafkaAddr
	}
	if kafkaTopic != "" {
		cfg.KafkaTopic = kafkaTopic
	}
	if kafkaBatch != 0 {
		cfg.KafkaBatch = kafkaBatch
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("[server] invalid configuration: %v", err)
	}

	if !logger.SetLevel(cfg.LogLevel) {
		log.Warnf("[server] unknown log level %q, using %v", cfg.LogLevel, log.GetLevel())
	}

	filter, err := newFilter(cfg.CorpusPath)
	if err != nil {
		log.Fatalf("[server] failed to load word list %s: %v", cfg.CorpusPath, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	defer store.Close()

	mod := moderator.New(filter, store)
	loadCtx, loadCancel := context.WithTimeout(ctx, 30*time.Second)
	err = mod.Load(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatalf("[server] failed to load word lists: %v", err)
	}
	log.Infof("[server] %d profanities, %d allowed words", len(mod.Words()), len(mod.AllowList()))

	var kafkaWriter *kafka.Writer
	if cfg.KafkaAddr != "" && cfg.KafkaTopic != "" {
		kafkaWriter = &kafka.Writer{
			Addr:      kafka.TCP(cfg.KafkaAddr),
			Topic:     cfg.KafkaTopic,
			BatchSize: cfg.KafkaBatch,
		}
		defer kafkaWriter.Close()
		if err := createTopic(cfg.KafkaAddr, cfg.KafkaTopic); err != nil {
			log.Warnf("[server] failed to create Kafka topic: %v", err)
		}
	} else {
		log.Warnf("[server] kafka was not configured, logs will not be sent to Kafka")
	}

	var wg sync.WaitGroup
	if cfg.streamEnabled() {
		svc, closeStream, err := newStream(cfg, mod)
		if err != nil {
			log.Fatalf("[server] %v", err)
		}
		defer closeStream()

		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Run(ctx)
		}()
	}

	var srvAPI *api.API
	if kafkaWriter != nil {
		srvAPI, err = api.New(cfg.ServiceName, mod, kafkaWriter)
	} else {
		srvAPI, err = api.New(cfg.ServiceName, mod, nil)
	}
	if err != nil {
		log.Fatalf("[server] failed to create API: %v", err)
	}
	srvAPI.Defaults = cfg.options()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srvAPI.Router(),
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info("[server] shutting down gracefully...")

	cancel()
	wg.Wait()

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}
}

// newFilter builds the filter from the corpus at path, or from the built-in
// list when path is empty.
func newFilter(path string) (*censor.Filter, error) {
	f := censor.New()
	if path == "" {
		return f, nil
	}
	if err := f.LoadFromJSON(path); err != nil {
		return nil, err
	}
	return f, nil
}

func openStore(ctx context.Context, kind string) (storage.WordStore, error) {
	switch kind {
	case "postgres":
		conf := postgres.NewConfig()
		if !conf.IsValid() {
			return nil, fmt.Errorf("invalid postgres config: %s", conf)
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, conf.ConString())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrConnectDB, err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", storage.ErrDBNotResponding, err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		log.Infof("[server] connected to postgres: %s", conf)
		return db, nil

	case "mongo":
		conf, err := mongo.NewConfig()
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := mongo.New(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrConnectDB, err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", storage.ErrDBNotResponding, err)
		}
		log.Infof("[server] connected to mongo: %s", conf)
		return db, nil

	default:
		log.Info("[server] running with in-memory word lists")
		return memdb.New(), nil
	}
}

// newStream wires the Kafka comment consumer. The returned func closes its
// reader and writer.
func newStream(cfg Config, mod *moderator.Moderator) (*stream.Service, func(), error) {
	scfg := stream.Config{
		Brokers:  []string{cfg.KafkaAddr},
		InTopic:  cfg.Stream.InTopic,
		OutTopic: cfg.Stream.OutTopic,
		GroupID:  cfg.Stream.GroupID,
		Workers:  cfg.Stream.Workers,
	}

	var auditor stream.Auditor
	if cfg.Audit.Index != "" {
		idx, err := audit.New(cfg.Audit.Nodes, cfg.Audit.Index)
		if err != nil {
			return nil, nil, err
		}
		auditor = idx
	}

	for _, topic := range []string{scfg.InTopic, scfg.OutTopic} {
		if err := createTopic(cfg.KafkaAddr, topic); err != nil {
			log.Warnf("[server] failed to create Kafka topic %s: %v", topic, err)
		}
	}

	r := stream.NewReader(scfg)
	w := stream.NewWriter(scfg)
	closer := func() {
		if err := r.Close(); err != nil {
			log.Errorf("[server] failed to close Kafka reader: %v", err)
		}
		if err := w.Close(); err != nil {
			log.Errorf("[server] failed to close Kafka writer: %v", err)
		}
	}

	return stream.New(mod, r, w, auditor, scfg.Workers, cfg.options()), closer, nil
}

func createTopic(broker, topic string) error {
	conn, err := kafka.DialContext(context.Background(), "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}
