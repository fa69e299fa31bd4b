package main

import (
	"strconv"
	"strings"
)

// eulaWarning is the exact body the server prints when eula.txt has not been
// accepted. It is matched verbatim.
const eulaWarning = "You need to agree to the EULA in order to run the server. Go to eula.txt for more info."

// ServerEvent is a recognized semantic event derived from one ConsoleMessage.
// The marker method restricts implementations to this package.
type ServerEvent interface {
	serverEvent()
}

// MustAcceptEula means the server refused to boot until eula.txt is accepted.
type MustAcceptEula struct{}

// PlayerChat is an in-game chat message.
type PlayerChat struct {
	Name    string
	Message string
}

// PlayerJoin carries the full login line. World is empty on single-world hosts.
type PlayerJoin struct {
	Name     string
	IP       string
	EntityID int
	X, Y, Z  float32
	World    string
}

// PlayerAuthenticated is emitted by the authenticator thread before the join.
type PlayerAuthenticated struct {
	Name string
	UUID string
}

// PlayerLeft means a player left the game normally.
type PlayerLeft struct {
	Name string
}

// PlayerDisconnected means a player's connection dropped.
type PlayerDisconnected struct {
	Name   string
	Reason string
}

// SpawnProgress reports spawn area preparation progress.
type SpawnProgress struct {
	Percent uint8
}

// SpawnComplete reports the total spawn preparation time.
type SpawnComplete struct {
	ElapsedMS uint64
}

// WorldReady means the server finished booting and accepts connections.
type WorldReady struct {
	ElapsedSeconds float32
}

func (MustAcceptEula) serverEvent()      {}
func (PlayerChat) serverEvent()          {}
func (PlayerJoin) serverEvent()          {}
func (PlayerAuthenticated) serverEvent() {}
func (PlayerLeft) serverEvent()          {}
func (PlayerDisconnected) serverEvent()  {}
func (SpawnProgress) serverEvent()       {}
func (SpawnComplete) serverEvent()       {}
func (WorldReady) serverEvent()          {}

// eventName returns the short tag used for config filtering, metrics
// attributes, and structured log export.
func eventName(ev ServerEvent) string {
	switch ev.(type) {
	case MustAcceptEula:
		return "eula"
	case PlayerChat:
		return "chat"
	case PlayerJoin:
		return "join"
	case PlayerAuthenticated:
		return "authenticated"
	case PlayerLeft:
		return "left"
	case PlayerDisconnected:
		return "disconnected"
	case SpawnProgress:
		return "spawn_progress"
	case SpawnComplete:
		return "spawn_complete"
	case WorldReady:
		return "world_ready"
	default:
		return "unknown"
	}
}

// classifierRule pairs a cheap predicate with an extractor. An extractor may
// return nil to signal that, on closer inspection, the rule does not apply;
// evaluation then continues with the next rule.
type classifierRule struct {
	match   func(*ConsoleMessage) bool
	extract func(*ConsoleMessage) ServerEvent
}

// classifierRules is evaluated top to bottom, first match wins. The order is
// load-bearing: several trigger substrings overlap (a chat message may quote
// any other rule's trigger), so chat must be tried before the body-substring
// rules below it.
var classifierRules = []classifierRule{
	{matchAuthenticated, extractAuthenticated},
	{matchChat, extractChat},
	{matchEula, func(*ConsoleMessage) ServerEvent { return MustAcceptEula{} }},
	{matchJoin, extractJoin},
	{matchSpawnProgress, extractSpawnProgress},
	{matchSpawnComplete, extractSpawnComplete},
	{matchDisconnected, extractDisconnected},
	{matchLeft, extractLeft},
	{matchWorldReady, extractWorldReady},
}

// Classify derives at most one ServerEvent from a console message.
// Returns nil when no rule applies.
func Classify(m *ConsoleMessage) ServerEvent {
	for _, r := range classifierRules {
		if !r.match(m) {
			continue
		}
		if ev := r.extract(m); ev != nil {
			return ev
		}
	}
	return nil
}

func matchAuthenticated(m *ConsoleMessage) bool {
	return strings.Contains(m.Thread, "User Authenticator")
}

func extractAuthenticated(m *ConsoleMessage) ServerEvent {
	const prefix = "UUID of player "
	i := strings.Index(m.Body, prefix)
	if i < 0 {
		return nil
	}
	rest := m.Body[i+len(prefix):]
	j := strings.Index(rest, " is ")
	if j < 0 {
		return nil
	}
	return PlayerAuthenticated{Name: rest[:j], UUID: rest[j+len(" is "):]}
}

func matchChat(m *ConsoleMessage) bool {
	if m.Level != LevelInfo {
		return false
	}
	return strings.HasPrefix(m.Thread, "Async Chat Thread") ||
		strings.HasPrefix(m.Body, "<") ||
		(strings.HasPrefix(m.Body, "[Not Secure] <") && m.Thread == "Server thread")
}

func extractChat(m *ConsoleMessage) ServerEvent {
	body := strings.TrimPrefix(m.Body, "[Not Secure] ")
	gt := strings.Index(body, ">")
	if gt < 0 {
		// Not actually a chat line; let the later rules have a look.
		return nil
	}
	return PlayerChat{
		Name:    strings.TrimPrefix(body[:gt], "<"),
		Message: strings.TrimPrefix(body[gt+1:], " "),
	}
}

func matchEula(m *ConsoleMessage) bool {
	return m.Level == LevelInfo && m.Body == eulaWarning
}

func matchJoin(m *ConsoleMessage) bool {
	return m.Level == LevelInfo && strings.Contains(m.Body, "logged in with entity id")
}

// extractJoin parses e.g.
//
//	Cldfire[/127.0.0.1:56538] logged in with entity id 121 at (-2.5, 63.0, 256.5)
//	Cldfire[/127.0.0.1:56538] logged in with entity id 121 at ([world_nether] -2.5, 63.0, 256.5)
//
// The bracketed world segment only appears on multi-world hosts.
func extractJoin(m *ConsoleMessage) ServerEvent {
	body := m.Body
	bracket := strings.Index(body, "[/")
	if bracket < 0 {
		return nil
	}
	name := body[:bracket]
	ipEnd := strings.Index(body[bracket:], "]")
	if ipEnd < 0 {
		return nil
	}
	ip := body[bracket+len("[/") : bracket+ipEnd]

	const idMarker = "logged in with entity id "
	i := strings.Index(body, idMarker)
	rest := body[i+len(idMarker):]
	at := strings.Index(rest, " at (")
	if at < 0 {
		return nil
	}
	entityID, err := strconv.Atoi(rest[:at])
	if err != nil {
		return nil
	}

	coords := strings.TrimSuffix(rest[at+len(" at ("):], ")")
	world := ""
	if strings.HasPrefix(coords, "[") {
		cb := strings.Index(coords, "] ")
		if cb < 0 {
			return nil
		}
		world = coords[1:cb]
		coords = coords[cb+len("] "):]
	}
	parts := strings.Split(coords, ", ")
	if len(parts) != 3 {
		return nil
	}
	var xyz [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil
		}
		xyz[i] = float32(v)
	}

	return PlayerJoin{
		Name:     name,
		IP:       ip,
		EntityID: entityID,
		X:        xyz[0],
		Y:        xyz[1],
		Z:        xyz[2],
		World:    world,
	}
}

func matchSpawnProgress(m *ConsoleMessage) bool {
	return strings.Contains(m.Body, "Preparing spawn area: ")
}

func extractSpawnProgress(m *ConsoleMessage) ServerEvent {
	const marker = "Preparing spawn area: "
	rest := m.Body[strings.Index(m.Body, marker)+len(marker):]
	pct := strings.Index(rest, "%")
	if pct < 0 {
		return nil
	}
	v, err := strconv.ParseUint(rest[:pct], 10, 8)
	if err != nil {
		return nil
	}
	return SpawnProgress{Percent: uint8(v)}
}

func matchSpawnComplete(m *ConsoleMessage) bool {
	return strings.Contains(m.Body, "Time elapsed: ")
}

func extractSpawnComplete(m *ConsoleMessage) ServerEvent {
	const marker = "Time elapsed: "
	rest := m.Body[strings.Index(m.Body, marker)+len(marker):]
	ms := strings.Index(rest, "ms")
	if ms < 0 {
		return nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(rest[:ms]), 10, 64)
	if err != nil {
		return nil
	}
	return SpawnComplete{ElapsedMS: v}
}

func matchDisconnected(m *ConsoleMessage) bool {
	return strings.Contains(m.Body, "lost connection: ")
}

func extractDisconnected(m *ConsoleMessage) ServerEvent {
	sp := strings.Index(m.Body, " ")
	if sp < 0 {
		return nil
	}
	colon := strings.Index(m.Body, ":")
	return PlayerDisconnected{
		Name:   m.Body[:sp],
		Reason: strings.TrimPrefix(m.Body[colon+1:], " "),
	}
}

func matchLeft(m *ConsoleMessage) bool {
	return strings.Contains(m.Body, "left the game")
}

func extractLeft(m *ConsoleMessage) ServerEvent {
	sp := strings.Index(m.Body, " ")
	if sp < 0 {
		return nil
	}
	return PlayerLeft{Name: m.Body[:sp]}
}

func matchWorldReady(m *ConsoleMessage) bool {
	return strings.HasPrefix(m.Body, "Done (")
}

func extractWorldReady(m *ConsoleMessage) ServerEvent {
	rest := m.Body[len("Done ("):]
	s := strings.Index(rest, "s")
	if s < 0 {
		return nil
	}
	v, err := strconv.ParseFloat(rest[:s], 32)
	if err != nil {
		return nil
	}
	return WorldReady{ElapsedSeconds: float32(v)}
}
