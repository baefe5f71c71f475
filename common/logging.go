package common

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ServiceName is the name this service reports in its logs and traces.
const ServiceName = "notification-state"

// Log is the logger used throughout the service.
var Log = logrus.WithFields(logrus.Fields{
	"service": ServiceName,
})

// InitLogging sets the log level and format. Log messages are written to a rotating log file
// if a file path is given and to standard error otherwise.
func InitLogging(level, file string) error {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "unable to initialize logging")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(parsedLevel)

	if file != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	return nil
}
