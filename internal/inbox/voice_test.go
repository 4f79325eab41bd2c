package inbox

import (
	"context"
	"errors"
	"testing"
	"time"
)

func (s *fakeScheduler) waitPending(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		got := len(s.pending)
		s.mu.Unlock()
		if got >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("scheduler never reached %d pending timers", n)
}

func TestTranscribe(t *testing.T) {
	ib, sched := newTestInbox(t)
	before := ib.Messages()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := ib.Transcribe(context.Background())
		done <- result{text, err}
	}()

	sched.waitPending(t, 1)
	sched.Advance(DefaultVoiceDelay - time.Millisecond)
	select {
	case <-done:
		t.Fatal("transcription finished before the voice delay")
	default:
	}

	sched.Advance(time.Millisecond)
	r := <-done
	if r.err != nil || r.text != VoiceTranscript {
		t.Errorf("Transcribe = %q, %v; want %q", r.text, r.err, VoiceTranscript)
	}
	if len(ib.Messages()) != len(before) {
		t.Error("Transcribe changed the conversation")
	}
}

func TestTranscribe_Cancelled(t *testing.T) {
	ib, sched := newTestInbox(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := ib.Transcribe(ctx)
		done <- err
	}()

	sched.waitPending(t, 1)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}

	sched.mu.Lock()
	stopped := sched.pending[0].stopped
	sched.mu.Unlock()
	if !stopped {
		t.Error("cancelled transcription left its timer armed")
	}
}
