// Package logging wires the application logger: ectologger carries the
// structured context the rest of the code attaches, zap does the encoding
// and output.
package logging

import (
	"reflect"
	"strings"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
)

// New builds the application logger. Production mode emits JSON; pretty mode
// uses zap's console encoder. The returned flush func drains buffered output
// and belongs in a defer at the top of main.
func New(production, pretty bool) (ectologger.Logger, func(), error) {
	var (
		zl  *zap.Logger
		err error
	)
	if production && !pretty {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	sink := zl.WithOptions(zap.AddCallerSkip(2))
	logger := ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		level, text := messageParts(msg)
		entry := sink.With(zap.Any("entry", msg))
		switch strings.ToLower(level) {
		case "error", "fatal":
			entry.Error(text)
		case "warn", "warning":
			entry.Warn(text)
		case "debug":
			entry.Debug(text)
		default:
			entry.Info(text)
		}
	})

	flush := func() { _ = zl.Sync() }
	return logger, flush, nil
}

// messageParts pulls the level and message text out of a log message without
// binding to its exact shape.
func messageParts(msg any) (level, text string) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Struct {
		return "", ""
	}
	if f := v.FieldByName("Level"); f.IsValid() && f.Kind() == reflect.String {
		level = f.String()
	}
	if f := v.FieldByName("Message"); f.IsValid() && f.Kind() == reflect.String {
		text = f.String()
	}
	return level, text
}
