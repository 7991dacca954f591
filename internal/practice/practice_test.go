package practice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/calmasana/calmasana-backend/internal/alignment"
	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
)

func TestAggregator_SummarizeAveragesAndRounds(t *testing.T) {
	agg := &Aggregator{}
	for _, s := range []int{100, 80, 60} {
		agg.Record(s)
	}
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	summary := agg.Summarize(start, end, "Mountain Pose")
	if summary.AverageAccuracy != 80 {
		t.Fatalf("expected average=80 got %v", summary.AverageAccuracy)
	}
	if summary.DurationMinutes != 10 {
		t.Fatalf("expected duration=10 got %d", summary.DurationMinutes)
	}
	if summary.Pose != "Mountain Pose" {
		t.Fatalf("unexpected pose %q", summary.Pose)
	}
	if !summary.Timestamp.Equal(end) {
		t.Fatalf("expected timestamp=end got %v", summary.Timestamp)
	}
}

func TestAggregator_SummarizeClearsSamples(t *testing.T) {
	agg := &Aggregator{}
	agg.Record(90)
	start := time.Now()
	agg.Summarize(start, start.Add(time.Minute), "Child's Pose")
	if agg.Count() != 0 {
		t.Fatalf("expected samples cleared, got %d", agg.Count())
	}
}

func TestAggregator_EmptySessionAveragesZero(t *testing.T) {
	agg := &Aggregator{}
	start := time.Now()
	summary := agg.Summarize(start, start.Add(90*time.Second), "Warrior II")
	if summary.AverageAccuracy != 0 {
		t.Fatalf("expected average=0 got %v", summary.AverageAccuracy)
	}
	if summary.DurationMinutes != 2 {
		t.Fatalf("expected 90s to round to 2 minutes, got %d", summary.DurationMinutes)
	}
}

type fakeSource struct {
	mu     sync.Mutex
	frames []*Frame
	closed bool
}

func (f *fakeSource) NextFrame() (*Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return nil, nil
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return frame, nil
}

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSource) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeSpeaker struct {
	mu      sync.Mutex
	phrases []string
}

func (s *fakeSpeaker) Speak(phrase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phrases = append(s.phrases, phrase)
}

func (s *fakeSpeaker) spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.phrases...)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func TestRunner_RecordsFramesAndClosesSourceOnCancel(t *testing.T) {
	target := map[string]domain.Point{
		"left_shoulder": {X: 0.5, Y: 0.5},
	}
	source := &fakeSource{frames: []*Frame{
		{
			Keypoints: []domain.Keypoint{{Name: "left_shoulder", X: 50, Y: 50, Score: 0.9}},
			Width:     100,
			Height:    100,
		},
	}}
	agg := &Aggregator{}

	recorded := make(chan alignment.Result, 1)
	runner := NewRunner(testLogger(t), RunnerConfig{
		Source:   source,
		Target:   target,
		Agg:      agg,
		Interval: time.Millisecond,
		OnFeedback: func(res alignment.Result) {
			select {
			case recorded <- res:
			default:
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	select {
	case res := <-recorded:
		if res.Accuracy != 100 {
			t.Fatalf("expected accuracy=100 got %d", res.Accuracy)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner never produced feedback")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop on cancel")
	}
	if !source.isClosed() {
		t.Fatalf("expected source to be closed after Run returns")
	}
	if agg.Count() == 0 {
		t.Fatalf("expected at least one recorded sample")
	}
}

func TestRunner_SetVoiceAnnounces(t *testing.T) {
	speaker := &fakeSpeaker{}
	runner := NewRunner(testLogger(t), RunnerConfig{
		Source:  &fakeSource{},
		Target:  map[string]domain.Point{},
		Agg:     &Aggregator{},
		Speaker: speaker,
	})

	runner.SetVoice(true)
	runner.SetVoice(false)

	got := speaker.spoken()
	if len(got) != 2 || got[0] != VoiceEnabledPhrase || got[1] != VoiceDisabledPhrase {
		t.Fatalf("unexpected announcements %v", got)
	}
}
