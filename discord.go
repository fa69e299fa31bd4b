package main

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

type DiscordChannel struct {
	session   *discordgo.Session
	channelID string
	inbound   chan InboundMessage
	botUserID string
	cfg       *Config
}

func NewDiscordChannel(token, channelID string, cfg *Config) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discordgo session: %w", err)
	}

	dc := &DiscordChannel{
		session:   session,
		channelID: channelID,
		inbound:   make(chan InboundMessage, 100),
		cfg:       cfg,
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	session.AddHandler(dc.onMessage)

	return dc, nil
}

func (dc *DiscordChannel) Name() string { return "Discord" }

func (dc *DiscordChannel) Start(ctx context.Context) error {
	if err := dc.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	dc.botUserID = dc.session.State.User.ID
	log.Printf("discord bot connected as %s", dc.session.State.User.Username)

	<-ctx.Done()
	dc.session.Close()
	return nil
}

func (dc *DiscordChannel) Send(ctx context.Context, event ServerEvent) error {
	if !dc.cfg.discordEventAllowed(eventName(event)) {
		return nil
	}

	msg := formatServerEvent(event)
	if msg == "" {
		return nil
	}

	_, err := dc.session.ChannelMessageSend(dc.channelID, msg)
	if err != nil {
		return fmt.Errorf("send to Discord: %w", err)
	}
	return nil
}

func (dc *DiscordChannel) Messages() <-chan InboundMessage { return dc.inbound }

func (dc *DiscordChannel) Close() error {
	return dc.session.Close()
}

func (dc *DiscordChannel) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.Author.ID == dc.botUserID {
		return
	}
	if m.ChannelID != dc.channelID {
		return
	}
	if m.Content == "" {
		return
	}

	author := m.Author.GlobalName
	if author == "" {
		author = m.Author.Username
	}

	dc.inbound <- InboundMessage{
		Source:  "Discord",
		Author:  author,
		Content: m.Content,
	}
}

func formatServerEvent(e ServerEvent) string {
	switch ev := e.(type) {
	case PlayerChat:
		return fmt.Sprintf("💬 **%s**: %s", ev.Name, ev.Message)
	case PlayerJoin:
		if ev.World != "" {
			return fmt.Sprintf("➡️ **%s** joined the game in %s", ev.Name, ev.World)
		}
		return fmt.Sprintf("➡️ **%s** joined the game", ev.Name)
	case PlayerLeft:
		return fmt.Sprintf("⬅️ **%s** left the game", ev.Name)
	case PlayerDisconnected:
		return fmt.Sprintf("⬅️ **%s** lost connection (%s)", ev.Name, ev.Reason)
	case WorldReady:
		return fmt.Sprintf("✅ Server is up (took %.1fs)", ev.ElapsedSeconds)
	case MustAcceptEula:
		return "⚠️ The server cannot start until the Minecraft EULA is accepted"
	case SpawnComplete:
		return fmt.Sprintf("🌍 Spawn area ready in %dms", ev.ElapsedMS)

	// Too chatty, or meaningless outside the console.
	case PlayerAuthenticated, SpawnProgress:
		return ""

	default:
		return ""
	}
}
