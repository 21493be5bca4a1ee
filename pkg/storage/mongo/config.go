package mongo

import (
	"fmt"
	"net/url"
	"os"

	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrConfParamMissing = fmt.Errorf("configuration parameter missing")

type Config struct {
	Host   string
	Port   string
	DBName string
	User   string
	Pass   string
}

// NewConfig reads MONGO_* environment variables. MONGO_HOST is required,
// the port defaults to 27017 and the database to "profanity".
func NewConfig() (*Config, error) {
	conf := Config{
		Host:   os.Getenv("MONGO_HOST"),
		Port:   os.Getenv("MONGO_PORT"),
		DBName: os.Getenv("MONGO_DB_NAME"),
		User:   os.Getenv("MONGO_USER"),
		Pass:   os.Getenv("MONGO_PASS"),
	}
	if conf.Host == "" {
		return nil, fmt.Errorf("%w: MONGO_HOST", ErrConfParamMissing)
	}
	if conf.Port == "" {
		conf.Port = "27017"
	}
	if conf.DBName == "" {
		conf.DBName = "profanity"
	}
	if (conf.User == "") != (conf.Pass == "") {
		return nil, fmt.Errorf("%w: MONGO_USER and MONGO_PASS must be set together", ErrConfParamMissing)
	}

	return &conf, nil
}

func (c *Config) conString() string {
	u := url.URL{Scheme: "mongodb", Host: c.Host + ":" + c.Port, Path: "/"}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Pass)
	}
	return u.String()
}

func (c Config) String() string {
	if c.User == "" {
		return fmt.Sprintf("%s:%s/%s", c.Host, c.Port, c.DBName)
	}
	return fmt.Sprintf("%s@%s:%s/%s", c.User, c.Host, c.Port, c.DBName)
}

func (c *Config) Options() *options.ClientOptions {
	return options.Client().ApplyURI(c.conString())
}
