package elev

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"elevsim/src/types"
)

// InitLogger sets up the default logger with compact time and file:line source.
// If logPath is set, output is also written to that file, which the caller must close.
func InitLogger(level slog.Level, logPath string) (*os.File, error) {
	var out io.Writer = os.Stdout
	var logFile *os.File
	if logPath != "" {
		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, logFile)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
	return logFile, nil
}

func FormatCall(call types.Call) string {
	switch call.Dir {
	case types.DirUp:
		return fmt.Sprintf("FloorUp(%d)", call.Floor)
	case types.DirDown:
		return fmt.Sprintf("FloorDown(%d)", call.Floor)
	case types.DirNone:
		return fmt.Sprintf("Car(%d)", call.Floor)
	}
	return "Unknown"
}

// FormatState renders a one line status for the console.
func FormatState(s ElevState) string {
	next := "-"
	if s.NextStopFloor != nil {
		next = fmt.Sprint(*s.NextStopFloor)
	}
	return fmt.Sprintf("floor %d | %-7s | next %s | route %v | queued %d",
		s.CurrentFloor, s.Status, next, s.Route, len(s.CallQueue))
}
