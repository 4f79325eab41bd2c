package inbox

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/syntra-ai/syntra/internal/responder"
)

const newChatGreeting = "Hello! I'm ready to help you with anything you need. What can I assist you with today?"

const welcomeTemplate = `Welcome to Syntra.ai Premium, %s! 🎉

I'm your AI assistant with FULL ACCESS to all features. I can help you with:

✅ **Unlimited AI Conversations** - Ask me anything, anytime
✅ **Smart Scheduling** - Connect your Google Calendar, Gmail, Notion
✅ **Restaurant Bookings** - I'll find and book the perfect spots
✅ **Weather & Location Services** - Real-time updates and suggestions
✅ **Advanced Analytics** - Detailed productivity reports
✅ **Priority Support** - Get help whenever you need it

How can I assist you today? Try asking me to plan your next date, schedule meetings, or book a restaurant!`

// Options configures an Inbox. Zero values select production defaults.
type Options struct {
	// StageDelay is the time spent in each of thinking, analysing and scheduling.
	StageDelay time.Duration
	// VoiceDelay is how long Transcribe takes.
	VoiceDelay time.Duration
	Scheduler  Scheduler
	Now        func() time.Time
	// Reply maps user input to assistant text. Defaults to responder.Text.
	Reply   func(input string) string
	History []Summary
	Logger  *slog.Logger
}

// Inbox holds the live conversation, the history sidebar and the stage
// machine that paces simulated replies.
type Inbox struct {
	delay      time.Duration
	voiceDelay time.Duration
	sched      Scheduler
	now        func() time.Time
	reply      func(string) string
	newID      func() string
	logger     *slog.Logger

	mu            sync.Mutex
	messages      []Message
	history       []Summary
	currentChatID string
	stage         Stage
	generation    uint64
	timers        []Timer
	closed        bool
	subs          map[int]chan Event
	nextSub       int
}

// New creates an Inbox with the given options.
func New(opts Options) *Inbox {
	ib := &Inbox{
		delay:      opts.StageDelay,
		voiceDelay: opts.VoiceDelay,
		sched:      opts.Scheduler,
		now:        opts.Now,
		reply:      opts.Reply,
		newID:      func() string { return uuid.New().String() },
		logger:     opts.Logger,
		history:    slices.Clone(opts.History),
		stage:      StageIdle,
		subs:       make(map[int]chan Event),
	}
	if ib.delay <= 0 {
		ib.delay = DefaultStageDelay
	}
	if ib.voiceDelay <= 0 {
		ib.voiceDelay = DefaultVoiceDelay
	}
	if ib.sched == nil {
		ib.sched = wallScheduler{}
	}
	if ib.now == nil {
		ib.now = time.Now
	}
	if ib.reply == nil {
		ib.reply = responder.Text
	}
	if ib.logger == nil {
		ib.logger = slog.Default()
	}
	return ib
}

// Welcome appends the premium greeting for name if the conversation is empty.
func (ib *Inbox) Welcome(name string) {
	if name == "" {
		name = "there"
	}

	ib.mu.Lock()
	defer ib.mu.Unlock()

	if len(ib.messages) > 0 {
		return
	}
	ib.appendLocked(Message{
		ID:        ib.newID(),
		Role:      RoleAssistant,
		Content:   fmt.Sprintf(welcomeTemplate, name),
		CreatedAt: ib.now(),
	}, ib.generation)
}

// Send appends a user message and starts a reply cycle. The reply is appended
// three stage delays later unless another Send, NewChat or LoadHistory
// supersedes it first; superseded cycles never reply.
func (ib *Inbox) Send(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	ib.mu.Lock()
	defer ib.mu.Unlock()

	if ib.closed {
		return Message{}, fmt.Errorf("inbox closed")
	}

	gen := ib.supersedeLocked()
	msg := Message{
		ID:        ib.newID(),
		Role:      RoleUser,
		Content:   text,
		CreatedAt: ib.now(),
	}
	ib.appendLocked(msg, gen)
	ib.startCycleLocked(gen, text)

	ib.logger.Debug("message submitted", "id", msg.ID, "generation", gen)
	return msg, nil
}

// Messages returns a copy of the conversation in insertion order.
func (ib *Inbox) Messages() []Message {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return slices.Clone(ib.messages)
}

// Stage reports the current stage.
func (ib *Inbox) Stage() Stage {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.stage
}

// Generation reports the id of the most recent reply cycle.
func (ib *Inbox) Generation() uint64 {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.generation
}

// NewChat drops the conversation and any pending reply, then greets.
func (ib *Inbox) NewChat() {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	gen := ib.supersedeLocked()
	ib.resetLocked(gen)
	ib.currentChatID = ""
	ib.setStageLocked(StageIdle, gen)
	ib.appendLocked(Message{
		ID:        ib.newID(),
		Role:      RoleAssistant,
		Content:   newChatGreeting,
		CreatedAt: ib.now(),
	}, gen)
}

// CurrentChatID returns the id of the loaded history entry, or "".
func (ib *Inbox) CurrentChatID() string {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.currentChatID
}

// Subscribe registers for events. The returned cancel func must be called to
// release the subscription. Events are dropped for subscribers whose buffer
// is full.
func (ib *Inbox) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	ib.mu.Lock()
	defer ib.mu.Unlock()

	if ib.closed {
		close(ch)
		return ch, func() {}
	}
	id := ib.nextSub
	ib.nextSub++
	ib.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ib.mu.Lock()
			defer ib.mu.Unlock()
			if c, ok := ib.subs[id]; ok {
				delete(ib.subs, id)
				close(c)
			}
		})
	}
}

// Close stops pending timers and closes all subscriber channels.
func (ib *Inbox) Close() {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	if ib.closed {
		return
	}
	ib.supersedeLocked()
	ib.closed = true
	ib.stage = StageIdle
	for id, ch := range ib.subs {
		delete(ib.subs, id)
		close(ch)
	}
}

func (ib *Inbox) resetLocked(gen uint64) {
	ib.messages = nil
	ib.publishLocked(Event{Type: EventReset, Generation: gen})
}

func (ib *Inbox) appendLocked(msg Message, gen uint64) {
	ib.messages = append(ib.messages, msg)
	ib.publishLocked(Event{Type: EventMessage, Message: &msg, Generation: gen})
}

func (ib *Inbox) publishLocked(ev Event) {
	for id, ch := range ib.subs {
		select {
		case ch <- ev:
		default:
			ib.logger.Warn("dropping inbox event for slow subscriber", "subscriber", id, "type", ev.Type)
		}
	}
}
