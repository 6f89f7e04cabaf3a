package utils

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level    string
	JSON     bool
	File     string
	ToStdout bool
}

// SetupLogging configures the global logrus logger. With a File set, output goes to a
// rotated file, teed to stdout when ToStdout is true. The returned closer releases the
// file handle.
func SetupLogging(cfg LogConfig) io.Closer {
	log.SetLevel(GetLevel(cfg.Level))

	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	if cfg.ToStdout {
		log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	} else {
		log.SetOutput(fileWriter)
	}

	return fileWriter
}

// GetLevel parses a logrus level name and falls back to info.
func GetLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
