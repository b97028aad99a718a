package store

import (
	"github.com/cpescan/cpescan/internal/log"
)

// logAdapter forwards gorm's logger output onto the application logger.
type logAdapter struct {
}

func (l *logAdapter) Print(v ...interface{}) {
	log.Debug(append([]interface{}{"gorm: "}, v...)...)
}
