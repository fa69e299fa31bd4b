package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the log level token from a console line header. Tokens outside the
// known set are preserved verbatim rather than rejected.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Known reports whether the level is one of the tokens the server normally emits.
func (l Level) Known() bool {
	return l == LevelInfo || l == LevelWarn || l == LevelError
}

// Clock is a time of day, as printed in a console line header. The zero value
// is midnight, which doubles as the sentinel for malformed timestamps.
type Clock struct {
	Hour, Min, Sec int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Min, c.Sec)
}

// ConsoleMessage is the structural decomposition of one console line:
// [HH:MM:SS] [<thread>/<LEVEL>]: <body>
type ConsoleMessage struct {
	Timestamp Clock
	Thread    string
	Level     Level
	Body      string
}

func (m *ConsoleMessage) String() string {
	return fmt.Sprintf("[%s] [%s/%s]: %s", m.Timestamp, m.Thread, m.Level, m.Body)
}

// ParseConsoleLine decomposes a console line into its header and body.
// Returns nil when the line does not carry the header grammar; the caller
// passes such lines through verbatim. Parsing never fails any other way.
func ParseConsoleLine(line string) *ConsoleMessage {
	end := strings.Index(line, "]")
	if end < 0 {
		return nil
	}
	stamp := strings.TrimPrefix(line[:end], "[")
	rest := line[end+1:]

	slash := strings.Index(rest, "/")
	if slash < 0 {
		return nil
	}
	thread := strings.TrimPrefix(rest[:slash], " [")
	rest = rest[slash+1:]

	end = strings.Index(rest, "]")
	if end < 0 {
		return nil
	}
	level := rest[:end]
	body := strings.TrimPrefix(rest[end+1:], ": ")

	return &ConsoleMessage{
		Timestamp: parseClock(stamp),
		Thread:    thread,
		Level:     Level(level),
		Body:      body,
	}
}

// parseClock parses "HH:MM:SS". Malformed components collapse to midnight
// rather than failing the whole line.
func parseClock(s string) Clock {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Clock{}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return Clock{}
	}
	return Clock{Hour: h, Min: m, Sec: sec}
}
