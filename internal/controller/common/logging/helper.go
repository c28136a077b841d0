package logginghelper

import (
	"github.com/Egor213/CallTrack/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(transport string, entry *domain.LogInput) {
	log.WithFields(log.Fields{
		"transport": transport,
		"service":   entry.Service,
		"method":    entry.Method,
		"path":      entry.Path,
	}).Debug("Received call record")
}

func LogSaved(entry *domain.LogInput, id int64) {
	log.WithFields(log.Fields{
		"service": entry.Service,
		"status":  entry.Status,
		"id":      id,
	}).Debug("Call record saved")
}

// LogError records the full failure detail server-side; clients only get a
// short message.
func LogError(operation string, err error) {
	log.WithFields(log.Fields{
		"operation": operation,
		"error":     err,
	}).Error("Request failed")
}
