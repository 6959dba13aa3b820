// Package logging configures the wrapper's own diagnostic logger. This
// channel is distinct from the notification sink: it exists so scheduled
// runs leave a local trace even when nobody is watching a terminal.
package logging

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Formatter renders compact single-line entries:
//
//	[2026-08-30 14:02:11] [warn ] health-check ping failed | url=https://hc.example
type Formatter struct{}

// Format renders one log entry.
func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	var buf *bytes.Buffer
	if entry.Buffer != nil {
		buf = entry.Buffer
	} else {
		buf = &bytes.Buffer{}
	}

	level := entry.Level.String()
	if level == "warning" {
		level = "warn"
	}

	fmt.Fprintf(buf, "[%s] [%-5s] %s",
		entry.Time.Format("2006-01-02 15:04:05"),
		level,
		strings.TrimRight(entry.Message, "\r\n"))

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(buf, " %s=%v", k, entry.Data[k])
		}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Setup configures the global logger. Diagnostics go to stderr — stdout
// belongs to the verbatim child echo — or to a rotating file when logFile
// is set.
func Setup(level, logFile string) {
	log.SetFormatter(&Formatter{})
	log.SetLevel(parseLevel(level))

	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
		return
	}
	log.SetOutput(os.Stderr)
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
