package main

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Bridge fans out recognized server events to chat channels and turns
// inbound chat into broadcast commands for the server.
type Bridge struct {
	commands chan<- Command
	rcon     *RCONClient // nil unless configured; used when stdin is inherited
	channels []Channel
	events   chan ServerEvent
}

func NewBridge(commands chan<- Command, rcon *RCONClient, channels []Channel) *Bridge {
	return &Bridge{
		commands: commands,
		rcon:     rcon,
		channels: channels,
		events:   make(chan ServerEvent, 100),
	}
}

// Events returns the channel the event loop forwards recognized events into.
func (b *Bridge) Events() chan<- ServerEvent {
	return b.events
}

// FanOutEvents reads events and sends them to all channels.
func (b *Bridge) FanOutEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.events:
			for _, ch := range b.channels {
				if err := ch.Send(ctx, event); err != nil {
					log.Printf("send to %s: %v", ch.Name(), err)
				}
			}
		}
	}
}

// HandleInbound reads messages from a channel and relays them to the server.
func (b *Bridge) HandleInbound(ctx context.Context, ch Channel) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch.Messages():
			b.sendToServer(ctx, msg)
		}
	}
}

func (b *Bridge) sendToServer(ctx context.Context, msg InboundMessage) {
	safe := strings.ReplaceAll(msg.Content, "\n", " ")
	safe = strings.ReplaceAll(safe, "\r", " ")
	if len(safe) > 200 {
		safe = safe[:200] + "..."
	}

	text := fmt.Sprintf("[%s] %s: %s", msg.Source, msg.Author, safe)

	if b.rcon != nil {
		if _, err := b.rcon.Execute("say " + text); err != nil {
			log.Printf("rcon send to server: %v", err)
		}
		return
	}
	select {
	case b.commands <- TellAll{Text: text}:
	case <-ctx.Done():
	}
}
