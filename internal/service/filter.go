package service

import "strings"

// ChannelSet is the parsed allow-list of monitored channel ids. The zero
// value monitors nothing. It is read-only after construction.
type ChannelSet struct {
	ids map[string]struct{}
}

// ParseChannelSet parses a comma-delimited list of channel ids. Surrounding
// whitespace is trimmed and empty entries are skipped, so "" and " , "
// produce an empty set.
func ParseChannelSet(raw string) ChannelSet {
	ids := make(map[string]struct{})
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return ChannelSet{ids: ids}
}

// IsMonitored reports whether channelID is in the allow-list.
func (s ChannelSet) IsMonitored(channelID string) bool {
	_, ok := s.ids[channelID]
	return ok
}

// Len returns the number of monitored channels.
func (s ChannelSet) Len() int {
	return len(s.ids)
}
