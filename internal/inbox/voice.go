package inbox

import (
	"context"
	"time"
)

// VoiceTranscript is what every simulated recording transcribes to.
const VoiceTranscript = "Voice message: Help me plan my day"

// DefaultVoiceDelay is how long transcription takes.
const DefaultVoiceDelay = time.Second

// Transcribe simulates processing a voice recording. After the voice delay
// it returns VoiceTranscript for the caller to place in its input box; the
// conversation is not touched.
func (ib *Inbox) Transcribe(ctx context.Context) (string, error) {
	done := make(chan struct{})
	t := ib.sched.AfterFunc(ib.voiceDelay, func() { close(done) })
	select {
	case <-done:
		return VoiceTranscript, nil
	case <-ctx.Done():
		t.Stop()
		return "", ctx.Err()
	}
}
