package discord

import (
	"context"
	"time"

	"github.com/rhysv96/discord-r9k/internal/model"
	"github.com/rhysv96/discord-r9k/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// MessageHandler consumes message events from the gateway.
type MessageHandler interface {
	Handle(ctx context.Context, msg model.IncomingMessage) (service.Result, error)
}

// Bot manages the Discord gateway connection and forwards message events.
type Bot struct {
	session *discordgo.Session
	handler MessageHandler
	timeout time.Duration
	log     zerolog.Logger
}

// NewSession creates a gateway session with the intents the bot needs to read
// message content in guilds and DMs.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	s.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return s, nil
}

// NewBot registers the message and ready handlers on session. Each event is
// handled under its own context bounded by timeout.
func NewBot(session *discordgo.Session, handler MessageHandler, timeout time.Duration, log zerolog.Logger) *Bot {
	bot := &Bot{
		session: session,
		handler: handler,
		timeout: timeout,
		log:     log,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)

	return bot
}

// Start opens the Discord gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	b.log.Info().Msg("gateway connection opened")
	return nil
}

// Stop closes the Discord gateway connection.
func (b *Bot) Stop() {
	_ = b.session.Close()
	b.log.Info().Msg("bot disconnected")
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	name := ""
	if r.User != nil {
		name = r.User.Username
	}
	b.log.Info().Str("user", name).Int("guilds", len(r.Guilds)).Msg("connected to discord")
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	// Failures are logged by the handler; one bad event must not stop the bot.
	_, _ = b.handler.Handle(ctx, toIncoming(m.Message))
}

func toIncoming(m *discordgo.Message) model.IncomingMessage {
	msg := model.IncomingMessage{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.IsBot = m.Author.Bot
	}
	// Webhook posts carry a synthetic author; treat them as automated.
	if m.WebhookID != "" {
		msg.IsBot = true
	}
	return msg
}
