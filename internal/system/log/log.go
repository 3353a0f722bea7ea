/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wso2/identity-phonebook-service/internal/system/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *Logger

// Logger is a wrapper around the slog logger.
type Logger struct {
	internal *slog.Logger
}

// GetLogger returns the process-wide logger. Before Init is called it falls back to
// a text logger at INFO level so early start-up messages are not lost.
func GetLogger() *Logger {
	if logger == nil {
		return &Logger{internal: slog.New(slog.NewTextHandler(os.Stderr, nil))}
	}
	return logger
}

// WithContext returns a logger that carries the request trace id, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if traceID, ok := ctx.Value(constants.TraceIDContextKey).(string); ok && traceID != "" {
		return l.With(String("trace_id", traceID))
	}
	return l
}

// Init initializes a text logger at the given level writing to stdout.
func Init(logLevel string) error {
	return InitWithOptions(Options{Level: logLevel})
}

// Output formats accepted in Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures the process-wide logger. When File is set, records go to
// stdout and to a size-rotated file.
type Options struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// InitWithOptions initializes the process-wide logger. Every record carries service=phonebook.
func InitWithOptions(opts Options) error {
	level, err := parseLogLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	var logHandler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		logHandler = slog.NewTextHandler(out, handlerOptions)
	case FormatJSON:
		logHandler = slog.NewJSONHandler(out, handlerOptions)
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	logger = &Logger{
		internal: slog.New(logHandler).With(slog.String("service", "phonebook")),
	}
	return nil
}

// With creates a new logger instance with additional fields.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{
		internal: l.internal.With(convertFields(fields)...),
	}
}

// Info logs an informational message with custom fields.
func (l *Logger) Info(msg string, fields ...Field) {
	l.internal.Info(msg, convertFields(fields)...)
}

// Debug logs a debug message with custom fields.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.internal.Debug(msg, convertFields(fields)...)
}

// Warn logs a warning message with custom fields.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.internal.Warn(msg, convertFields(fields)...)
}

// Error logs an error message with custom fields.
func (l *Logger) Error(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
}

// Fatal logs a fatal message with custom fields and exits the application.
func (l *Logger) Fatal(msg string, fields ...Field) {
	l.internal.Error(msg, convertFields(fields)...)
	os.Exit(1)
}

// parseLogLevel parses the log level string and returns the corresponding slog.Level.
func parseLogLevel(logLevel string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(logLevel))
	if err != nil {
		return slog.LevelError, err
	}
	return level, nil
}

// convertFields converts a slice of Field to a variadic list of slog.Attr.
func convertFields(fields []Field) []any {
	attrs := make([]any, len(fields))
	for i, field := range fields {
		attrs[i] = slog.Any(field.Key, field.Value)
	}
	return attrs
}
