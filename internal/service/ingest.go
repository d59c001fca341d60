package service

import (
	"context"
	"fmt"

	"github.com/rhysv96/discord-r9k/internal/metrics"
	"github.com/rhysv96/discord-r9k/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MessageStore is the part of the message log the ingestor uses.
type MessageStore interface {
	ContentFinder
	Insert(ctx context.Context, msg model.NewMessage) (*model.StoredMessage, error)
}

// Replier sends a plain-text reply addressed to msg.
type Replier interface {
	Reply(ctx context.Context, msg model.IncomingMessage, text string) error
}

type Outcome string

const (
	OutcomeDiscarded       Outcome = "discarded"
	OutcomeStored          Outcome = "stored"
	OutcomeStoredDuplicate Outcome = "duplicate"
	OutcomeFailed          Outcome = "failed"
)

// Discard reasons.
const (
	ReasonBot     = "bot"
	ReasonChannel = "channel"
	ReasonNoGuild = "no_guild"
)

// Result describes what happened to one message event.
type Result struct {
	Outcome Outcome
	// Reason is set when Outcome is OutcomeDiscarded.
	Reason string
	// Duplicate is the original message this one repeated, if any.
	Duplicate *model.StoredMessage
	// Stored is the persisted record.
	Stored *model.StoredMessage
}

// Ingestor runs the per-message pipeline. It holds no per-event state, so
// Handle may be called concurrently.
type Ingestor struct {
	channels ChannelSet
	detector *Detector
	store    MessageStore
	replier  Replier
	rules    []Rule
	log      zerolog.Logger
}

func NewIngestor(channels ChannelSet, store MessageStore, replier Replier, rules []Rule, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		channels: channels,
		detector: NewDetector(store),
		store:    store,
		replier:  replier,
		rules:    rules,
		log:      log,
	}
}

// MessageURL is the deep link to a stored message.
func MessageURL(m model.StoredMessage) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", m.GuildID, m.ChannelID, m.MessageID)
}

// DuplicateReply is the text sent when a message repeats an earlier one.
func DuplicateReply(original model.StoredMessage) string {
	return "Duplicate of " + MessageURL(original)
}

// Handle processes one incoming message: filter, detect and notify, then
// persist. A non-nil error means the event failed; reply failures are
// logged and never returned.
func (i *Ingestor) Handle(ctx context.Context, msg model.IncomingMessage) (Result, error) {
	log := i.log.With().
		Str("event_id", uuid.NewString()).
		Str("channel_id", msg.ChannelID).
		Str("message_id", msg.MessageID).
		Str("author_id", msg.AuthorID).
		Logger()

	if msg.IsBot {
		return i.discard(log, ReasonBot), nil
	}
	if !i.channels.IsMonitored(msg.ChannelID) {
		return i.discard(log, ReasonChannel), nil
	}

	// Phase 1 always completes before phase 2 starts, so the current
	// message is never in the store while it is being checked.
	dup, err := i.detect(ctx, log, msg)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(OutcomeFailed)).Inc()
		log.Error().Err(err).Msg("duplicate check failed")
		return Result{Outcome: OutcomeFailed}, err
	}

	if !msg.HasGuild() {
		res := i.discard(log, ReasonNoGuild)
		res.Duplicate = dup
		return res, nil
	}

	i.applyRules(ctx, log, msg)

	stored, err := i.persist(ctx, msg)
	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(OutcomeFailed)).Inc()
		log.Error().Err(err).Msg("persist failed")
		return Result{Outcome: OutcomeFailed, Duplicate: dup}, err
	}

	res := Result{Outcome: OutcomeStored, Duplicate: dup, Stored: stored}
	if dup != nil {
		res.Outcome = OutcomeStoredDuplicate
	}
	metrics.EventsProcessed.WithLabelValues(string(res.Outcome)).Inc()
	log.Debug().Int64("id", stored.ID).Str("outcome", string(res.Outcome)).Msg("message stored")
	return res, nil
}

// detect looks up the oldest earlier message with the same content and, if
// there is one, replies with a link to it.
func (i *Ingestor) detect(ctx context.Context, log zerolog.Logger, msg model.IncomingMessage) (*model.StoredMessage, error) {
	dup, err := i.detector.FindDuplicate(ctx, msg.Content)
	if err != nil || dup == nil {
		return nil, err
	}

	metrics.DuplicatesFound.Inc()
	log.Info().Int64("original_id", dup.ID).Msg("duplicate found")
	i.reply(ctx, log, msg, "duplicate", DuplicateReply(*dup))
	return dup, nil
}

func (i *Ingestor) applyRules(ctx context.Context, log zerolog.Logger, msg model.IncomingMessage) {
	for _, r := range i.rules {
		if r.Matches(msg) {
			i.reply(ctx, log.With().Str("rule", r.Name()).Logger(), msg, r.Name(), r.Reply(msg))
		}
	}
}

// persist is the second phase: append the message to the log.
func (i *Ingestor) persist(ctx context.Context, msg model.IncomingMessage) (*model.StoredMessage, error) {
	stored, err := i.store.Insert(ctx, msg.ToNew())
	if err != nil {
		return nil, fmt.Errorf("persist message %s: %w", msg.MessageID, err)
	}
	return stored, nil
}

func (i *Ingestor) reply(ctx context.Context, log zerolog.Logger, msg model.IncomingMessage, kind, text string) {
	if err := i.replier.Reply(ctx, msg, text); err != nil {
		metrics.RepliesSent.WithLabelValues(kind, "error").Inc()
		log.Warn().Err(err).Str("kind", kind).Msg("reply failed")
		return
	}
	metrics.RepliesSent.WithLabelValues(kind, "ok").Inc()
}

func (i *Ingestor) discard(log zerolog.Logger, reason string) Result {
	metrics.EventsProcessed.WithLabelValues(string(OutcomeDiscarded)).Inc()
	metrics.EventsDiscarded.WithLabelValues(reason).Inc()
	log.Debug().Str("reason", reason).Msg("message discarded")
	return Result{Outcome: OutcomeDiscarded, Reason: reason}
}
