package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatServerEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event ServerEvent
		want  string
	}{
		{
			name:  "chat",
			event: PlayerChat{Name: "Cldfire", Message: "hi!"},
			want:  "💬 **Cldfire**: hi!",
		},
		{
			name:  "join",
			event: PlayerJoin{Name: "Cldfire"},
			want:  "➡️ **Cldfire** joined the game",
		},
		{
			name:  "join with world",
			event: PlayerJoin{Name: "Cldfire", World: "world_nether"},
			want:  "➡️ **Cldfire** joined the game in world_nether",
		},
		{
			name:  "left",
			event: PlayerLeft{Name: "Cldfire"},
			want:  "⬅️ **Cldfire** left the game",
		},
		{
			name:  "disconnected",
			event: PlayerDisconnected{Name: "Cldfire", Reason: "Timed out"},
			want:  "⬅️ **Cldfire** lost connection (Timed out)",
		},
		{
			name:  "world ready",
			event: WorldReady{ElapsedSeconds: 21.07},
			want:  "✅ Server is up (took 21.1s)",
		},
		{
			name:  "eula",
			event: MustAcceptEula{},
			want:  "⚠️ The server cannot start until the Minecraft EULA is accepted",
		},
		{
			name:  "authenticated is console-only",
			event: PlayerAuthenticated{Name: "Cldfire"},
			want:  "",
		},
		{
			name:  "spawn progress is too chatty",
			event: SpawnProgress{Percent: 47},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatServerEvent(tt.event))
		})
	}
}
