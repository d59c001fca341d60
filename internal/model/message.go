package model

// StoredMessage represents one row of the messages table.
type StoredMessage struct {
	ID        int64   `json:"id"`
	GuildID   string  `json:"guild_id"`
	ChannelID string  `json:"channel_id"`
	MessageID string  `json:"message_id"`
	AuthorID  string  `json:"author_id"`
	Content   string  `json:"content"`
	ImageHash *string `json:"image_hash,omitempty"` // reserved for perceptual hashing, never written yet
}

// NewMessage is the payload for storing an observed message.
type NewMessage struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
}

// IncomingMessage is a message event delivered by the chat gateway.
// GuildID is empty for messages without a guild (direct messages).
type IncomingMessage struct {
	AuthorID  string
	IsBot     bool
	GuildID   string
	ChannelID string
	MessageID string
	Content   string
}

// HasGuild reports whether the message was posted inside a guild.
func (m IncomingMessage) HasGuild() bool {
	return m.GuildID != ""
}

// ToNew converts the event into a storable payload.
func (m IncomingMessage) ToNew() NewMessage {
	return NewMessage{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.MessageID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
	}
}
