package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsoleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want *ConsoleMessage
	}{
		{
			name: "info line",
			line: "[23:11:12] [Server thread/INFO]: Starting minecraft server version 1.20.4",
			want: &ConsoleMessage{
				Timestamp: Clock{23, 11, 12},
				Thread:    "Server thread",
				Level:     LevelInfo,
				Body:      "Starting minecraft server version 1.20.4",
			},
		},
		{
			name: "warn line",
			line: "[00:03:56] [Server thread/WARN]: Failed to load eula.txt",
			want: &ConsoleMessage{
				Timestamp: Clock{0, 3, 56},
				Thread:    "Server thread",
				Level:     LevelWarn,
				Body:      "Failed to load eula.txt",
			},
		},
		{
			name: "error line",
			line: "[08:15:00] [Worker-Main-3/ERROR]: Exception ticking world",
			want: &ConsoleMessage{
				Timestamp: Clock{8, 15, 0},
				Thread:    "Worker-Main-3",
				Level:     LevelError,
				Body:      "Exception ticking world",
			},
		},
		{
			name: "unknown level token preserved verbatim",
			line: "[12:00:00] [Server thread/FATAL]: something broke",
			want: &ConsoleMessage{
				Timestamp: Clock{12, 0, 0},
				Thread:    "Server thread",
				Level:     Level("FATAL"),
				Body:      "something broke",
			},
		},
		{
			name: "malformed time falls back to midnight",
			line: "[aa:bb:cc] [Server thread/INFO]: hello",
			want: &ConsoleMessage{
				Timestamp: Clock{},
				Thread:    "Server thread",
				Level:     LevelInfo,
				Body:      "hello",
			},
		},
		{
			name: "no closing bracket",
			line: "Loading libraries, please wait...",
			want: nil,
		},
		{
			name: "no slash",
			line: "[12:00:00] [Server thread]: hello",
			want: nil,
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseConsoleLine(tt.line)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleMessageString(t *testing.T) {
	t.Parallel()

	line := "[23:11:12] [Server thread/INFO]: hello world"
	msg := ParseConsoleLine(line)
	require.NotNil(t, msg)
	assert.Equal(t, line, msg.String())
}

func TestLevelKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, LevelInfo.Known())
	assert.True(t, LevelWarn.Known())
	assert.True(t, LevelError.Known())
	assert.False(t, Level("DEBUG").Known())
	assert.False(t, Level("").Known())
}
