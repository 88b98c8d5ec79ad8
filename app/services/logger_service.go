package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LoggerService handles application logging: one file per day under the
// data directory, mirrored to stdout.
type LoggerService struct {
	logDir     string
	logFile    *os.File
	logger     *log.Logger
	currentDay string
}

// NewLoggerService creates a new logger service writing under dataPath.
func NewLoggerService(dataPath string) *LoggerService {
	s := &LoggerService{logDir: filepath.Join(dataPath, "logs")}

	if err := os.MkdirAll(s.logDir, 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
		s.logDir = "logs"
		os.MkdirAll(s.logDir, 0755)
	}

	if err := s.rotateLogFile(); err != nil {
		log.Printf("Warning: Could not create log file: %v. Logging to stdout only.", err)
		s.logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	return s
}

// rotateLogFile opens (or reopens) the log file for the current day.
func (s *LoggerService) rotateLogFile() error {
	day := time.Now().Format("2006-01-02")
	if day == s.currentDay && s.logFile != nil {
		return nil
	}

	if s.logFile != nil {
		s.logFile.Close()
	}

	path := filepath.Join(s.logDir, fmt.Sprintf("comanda-%s.log", day))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	s.logFile = f
	s.currentDay = day
	s.logger = log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
	return nil
}

func (s *LoggerService) logf(level, format string, args ...any) {
	if err := s.rotateLogFile(); err != nil {
		s.logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	s.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// LogInfo logs an informational message.
func (s *LoggerService) LogInfo(format string, args ...any) {
	s.logf("INFO", format, args...)
}

// LogWarning logs a warning.
func (s *LoggerService) LogWarning(format string, args ...any) {
	s.logf("WARN", format, args...)
}

// LogError logs an error.
func (s *LoggerService) LogError(format string, args ...any) {
	s.logf("ERROR", format, args...)
}

// Close releases the log file.
func (s *LoggerService) Close() {
	if s.logFile != nil {
		s.logFile.Close()
		s.logFile = nil
	}
}
