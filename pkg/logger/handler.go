package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000-07:00"
	logDirMode      = 0o700
	lineCapacity    = 256
)

// sink is shared by a handler and every handler derived from it, so lines
// from loggers returned by With never interleave.
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// LineHandler is a slog.Handler that writes one line per record:
//
//	2026-10-18T09:41:07.123+02:00 INFO  child exited code=0 elapsed="1 second"
//
// Attribute values that are empty or contain spaces, quotes, '=' or control
// characters are quoted.
type LineHandler struct {
	sink   *sink
	level  slog.Leveler
	prefix string
	attrs  []byte
}

// NewFileHandler opens path for appending, creating its directory with mode
// 0700 when missing.
func NewFileHandler(path string, level slog.Leveler) (*LineHandler, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return nil, err
	}

	//nolint:gosec // path is the XDG state file or NOTIFY_COMPLETE_LOG_FILE
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
	if err != nil {
		return nil, err
	}

	return &LineHandler{sink: &sink{w: f, closer: f}, level: level}, nil
}

// NewLineHandler writes to w. Close leaves w open.
func NewLineHandler(w io.Writer, level slog.Leveler) *LineHandler {
	return &LineHandler{sink: &sink{w: w}, level: level}
}

// Enabled implements slog.Handler.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, lineCapacity)
	line = r.Time.Local().AppendFormat(line, timestampLayout)
	line = fmt.Appendf(line, " %-5s ", r.Level.String())
	line = appendMessage(line, r.Message)
	line = append(line, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		line = appendAttr(line, h.prefix, a)

		return true
	})

	line = append(line, '\n')

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	_, err := h.sink.w.Write(line)

	return err
}

// WithAttrs implements slog.Handler. Attributes are formatted once here.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	child := *h
	child.attrs = append([]byte(nil), h.attrs...)

	for _, a := range attrs {
		child.attrs = appendAttr(child.attrs, h.prefix, a)
	}

	return &child
}

// WithGroup implements slog.Handler.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	child := *h
	child.prefix = h.prefix + name + "."

	return &child
}

// Close closes the log file opened by NewFileHandler.
func (h *LineHandler) Close() error {
	if h.sink.closer == nil {
		return nil
	}

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	return h.sink.closer.Close()
}

func appendAttr(line []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return line
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			line = appendAttr(line, group, ga)
		}

		return line
	}

	line = append(line, ' ')
	line = append(line, prefix...)
	line = append(line, a.Key...)
	line = append(line, '=')

	val := a.Value.String()
	if val == "" || strings.ContainsFunc(val, needsQuote) {
		return strconv.AppendQuote(line, val)
	}

	return append(line, val...)
}

// appendMessage keeps a message on one line without quoting ordinary text.
func appendMessage(line []byte, msg string) []byte {
	if strings.ContainsFunc(msg, unprintable) {
		return strconv.AppendQuote(line, msg)
	}

	return append(line, msg...)
}

func needsQuote(r rune) bool {
	return r == ' ' || r == '=' || r == '"' || unprintable(r)
}

func unprintable(r rune) bool {
	return !unicode.IsPrint(r)
}
