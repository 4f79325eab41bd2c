package inbox

import (
	"fmt"
	"strings"
	"time"
)

// SeedHistory returns the sample conversations shown to a fresh account,
// aged relative to now.
func SeedHistory(now time.Time) []Summary {
	return []Summary{
		{ID: "1", Title: "Restaurant booking for Monday", LastMessage: "I've found 5 great restaurants for your date...", UpdatedAt: now.Add(-2 * time.Hour), MessageCount: 8},
		{ID: "2", Title: "Calendar scheduling help", LastMessage: "Your schedule has been optimized for next week...", UpdatedAt: now.Add(-24 * time.Hour), MessageCount: 12},
		{ID: "3", Title: "Weather and travel planning", LastMessage: "The weather looks perfect for your trip...", UpdatedAt: now.Add(-3 * 24 * time.Hour), MessageCount: 6},
		{ID: "4", Title: "Project deadline reminders", LastMessage: "I've set up reminders for all your upcoming deadlines...", UpdatedAt: now.Add(-5 * 24 * time.Hour), MessageCount: 4},
		{ID: "5", Title: "Meeting preparation notes", LastMessage: "Here's a summary of the key points for tomorrow's meeting...", UpdatedAt: now.Add(-7 * 24 * time.Hour), MessageCount: 15},
	}
}

// History returns the summaries whose title or last message contains query,
// case-insensitively. An empty query returns everything.
func (ib *Inbox) History(query string) []Summary {
	q := strings.ToLower(query)

	ib.mu.Lock()
	defer ib.mu.Unlock()

	out := make([]Summary, 0, len(ib.history))
	for _, s := range ib.history {
		if strings.Contains(strings.ToLower(s.Title), q) || strings.Contains(strings.ToLower(s.LastMessage), q) {
			out = append(out, s)
		}
	}
	return out
}

// LoadHistory replaces the conversation with a two-message transcript built
// from the summary. It reports false, changing nothing, when id is unknown.
func (ib *Inbox) LoadHistory(id string) bool {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	var chat *Summary
	for i := range ib.history {
		if ib.history[i].ID == id {
			chat = &ib.history[i]
			break
		}
	}
	if chat == nil {
		return false
	}

	gen := ib.supersedeLocked()
	ib.resetLocked(gen)
	ib.currentChatID = id
	ib.setStageLocked(StageIdle, gen)
	ib.appendLocked(Message{
		ID:        ib.newID(),
		Role:      RoleUser,
		Content:   "Help me with " + strings.ToLower(chat.Title),
		CreatedAt: chat.UpdatedAt.Add(-time.Minute),
	}, gen)
	ib.appendLocked(Message{
		ID:        ib.newID(),
		Role:      RoleAssistant,
		Content:   chat.LastMessage,
		CreatedAt: chat.UpdatedAt,
	}, gen)
	return true
}

// DeleteHistory removes the summary with id. Unknown ids are ignored.
func (ib *Inbox) DeleteHistory(id string) {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	kept := ib.history[:0]
	for _, s := range ib.history {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	ib.history = kept
}

// FormatRelative renders t the way the history sidebar does.
func FormatRelative(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)
	days := hours / 24

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
