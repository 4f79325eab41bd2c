package inbox

import "time"

// Stage is the cosmetic status shown while a reply is "being prepared".
type Stage string

const (
	StageIdle       Stage = "idle"
	StageThinking   Stage = "thinking"
	StageAnalysing  Stage = "analysing"
	StageScheduling Stage = "scheduling"
)

// DefaultStageDelay is the time spent in each non-idle stage.
const DefaultStageDelay = time.Second

// Timer is a pending delayed callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// step is one scheduled transition of a reply cycle. The final step has
// reply set and returns the machine to idle.
type step struct {
	after time.Duration
	stage Stage
	reply bool
}

// cycle lays out the transitions that follow a submission, which itself
// enters StageThinking immediately.
func cycle(delay time.Duration) []step {
	return []step{
		{after: delay, stage: StageAnalysing},
		{after: 2 * delay, stage: StageScheduling},
		{after: 3 * delay, stage: StageIdle, reply: true},
	}
}

// startCycleLocked enters StageThinking for generation gen and arms the timers for the
// remaining stages. Callers hold ib.mu.
func (ib *Inbox) startCycleLocked(gen uint64, input string) {
	ib.setStageLocked(StageThinking, gen)
	for _, s := range cycle(ib.delay) {
		t := ib.sched.AfterFunc(s.after, func() { ib.fire(gen, s, input) })
		ib.timers = append(ib.timers, t)
	}
}

// fire applies a scheduled step if gen is still the current generation.
// Steps from superseded cycles are dropped.
func (ib *Inbox) fire(gen uint64, s step, input string) {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	if ib.closed || gen != ib.generation {
		ib.logger.Debug("dropping stale stage transition", "generation", gen, "current", ib.generation, "stage", s.stage)
		return
	}

	if s.reply {
		msg := Message{
			ID:        ib.newID(),
			Role:      RoleAssistant,
			Content:   ib.reply(input),
			CreatedAt: ib.now(),
		}
		ib.appendLocked(msg, gen)
		ib.timers = nil
	}
	ib.setStageLocked(s.stage, gen)
}

// supersedeLocked invalidates any in-flight cycle and returns the new
// generation. Callers hold ib.mu.
func (ib *Inbox) supersedeLocked() uint64 {
	for _, t := range ib.timers {
		t.Stop()
	}
	ib.timers = nil
	ib.generation++
	return ib.generation
}

func (ib *Inbox) setStageLocked(s Stage, gen uint64) {
	ib.stage = s
	ib.publishLocked(Event{Type: EventStage, Stage: s, Generation: gen})
}
