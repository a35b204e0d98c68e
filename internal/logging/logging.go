// Package logging builds the zerolog loggers shared by every component.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a timestamped logger writing to w. format "console" gives the
// coloured human format; anything else writes JSON lines. Extra writers (a log
// file, say) receive the plain console format without colours.
func New(level, format string, w io.Writer, extra ...io.Writer) zerolog.Logger {
	var out io.Writer = w
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	if len(extra) > 0 {
		writers := []io.Writer{out}
		for _, e := range extra {
			writers = append(writers, zerolog.ConsoleWriter{Out: e, TimeFormat: time.RFC3339, NoColor: true})
		}
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Sampled wraps a logger for per-frame messages: at most 5 entries per 10
// seconds, then 1 in 100.
func Sampled(log zerolog.Logger) zerolog.Logger {
	return log.With().Bool("sampled", true).Logger().Sample(&zerolog.BurstSampler{
		Burst:       5,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}
