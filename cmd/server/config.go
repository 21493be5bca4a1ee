package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"profanity/pkg/moderator"
)

type Config struct {
	ServiceName string `toml:"serviceName"`
	CorpusPath  string `toml:"corpusPath"`
	Storage     string `toml:"storage"`

	HTTPAddr   string `toml:"httpAddr"`
	LogLevel   string `toml:"logLevel"`
	KafkaAddr  string `toml:"kafkaAddr"`
	KafkaTopic string `toml:"kafkaTopic"`
	KafkaBatch int    `toml:"kafkaBatch"`

	CensorChar string `toml:"censorChar"`
	DigitAware bool   `toml:"digitAware"`

	Stream StreamConfig `toml:"stream"`
	Audit  AuditConfig  `toml:"audit"`
}

type StreamConfig struct {
	InTopic  string `toml:"inTopic"`
	OutTopic string `toml:"outTopic"`
	GroupID  string `toml:"groupID"`
	Workers  int    `toml:"workers"`
}

type AuditConfig struct {
	Nodes []string `toml:"nodes"`
	Index string   `toml:"index"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceName: "profanity",
		Storage:     "memory",
		HTTPAddr:    ":8055",
		LogLevel:    "info",
		CensorChar:  "*",
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Storage {
	case "memory", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown storage %q, want memory, postgres or mongo", c.Storage)
	}
	if utf8.RuneCountInString(c.CensorChar) != 1 {
		return fmt.Errorf("censorChar must be a single character, got %q", c.CensorChar)
	}
	if c.Stream.InTopic != "" && c.Stream.OutTopic == "" {
		return fmt.Errorf("stream.outTopic is required when stream.inTopic is set")
	}
	if c.Audit.Index != "" && len(c.Audit.Nodes) == 0 {
		return fmt.Errorf("audit.nodes is required when audit.index is set")
	}
	if !strings.Contains(c.HTTPAddr, ":") {
		return fmt.Errorf("http address %q has no port, e.g. ':8080'", c.HTTPAddr)
	}

	return nil
}

func (c *Config) options() moderator.Options {
	ch, _ := utf8.DecodeRuneInString(c.CensorChar)
	return moderator.Options{CensorChar: ch, DigitAware: c.DigitAware}
}

// streamEnabled reports whether comments should be consumed from Kafka.
func (c *Config) streamEnabled() bool {
	return c.KafkaAddr != "" && c.Stream.InTopic != ""
}
