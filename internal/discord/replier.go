package discord

import (
	"context"
	"fmt"
	"math"

	"github.com/rhysv96/discord-r9k/internal/model"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// messageSender is the slice of *discordgo.Session the replier calls.
type messageSender interface {
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Replier posts replies through the gateway session, paced so bursts of
// duplicates don't run into Discord's per-channel rate limits.
type Replier struct {
	sender  messageSender
	limiter *rate.Limiter
}

func NewReplier(session *discordgo.Session, perSecond float64) *Replier {
	return newReplier(session, perSecond)
}

func newReplier(sender messageSender, perSecond float64) *Replier {
	burst := int(math.Ceil(perSecond))
	if burst < 1 {
		burst = 1
	}
	return &Replier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Reply sends text as a reply to msg.
func (r *Replier) Reply(ctx context.Context, msg model.IncomingMessage, text string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("reply to %s: %w", msg.MessageID, err)
	}

	ref := &discordgo.MessageReference{
		MessageID: msg.MessageID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
	}

	if _, err := r.sender.ChannelMessageSendReply(msg.ChannelID, text, ref, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("reply to %s: %w", msg.MessageID, err)
	}
	return nil
}
