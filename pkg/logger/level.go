package logger

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// SetLevel sets the logrus level by name: debug, info, warn or error.
// Unknown names leave the level unchanged and return false.
func SetLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		return false
	}
	return true
}
