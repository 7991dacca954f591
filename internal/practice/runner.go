package practice

import (
	"context"
	"sync"
	"time"

	"github.com/calmasana/calmasana-backend/internal/alignment"
	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
)

// Voice announcement phrases.
const (
	VoiceEnabledPhrase  = "Voice guidance enabled. Follow my instructions."
	VoiceDisabledPhrase = "Voice guidance disabled."
)

// Frame is one detector output: the raw keypoints plus the frame dimensions
// they were measured in.
type Frame struct {
	Keypoints []domain.Keypoint
	Width     float64
	Height    float64
}

// FrameSource hands the runner detector frames. NextFrame returns nil when
// no frame is ready yet; the runner re-polls on the next tick instead of
// blocking. Close releases the camera and the detector.
type FrameSource interface {
	NextFrame() (*Frame, error)
	Close() error
}

// Speaker is the external voice collaborator. The runner only decides the
// phrase.
type Speaker interface {
	Speak(phrase string)
}

// Runner drives one practice session: a cancellable polling loop that feeds
// each frame through the alignment engine and records the accuracy sample.
// The evaluation itself is pure; everything impure lives here.
type Runner struct {
	log      *logger.Logger
	source   FrameSource
	target   map[string]domain.Point
	agg      *Aggregator
	speaker  Speaker
	interval time.Duration

	minConfidence float64
	threshold     float64

	// onFeedback receives every frame's result, voice enabled or not.
	onFeedback func(alignment.Result)

	mu           sync.Mutex
	voiceEnabled bool
}

type RunnerConfig struct {
	Source   FrameSource
	Target   map[string]domain.Point
	Agg      *Aggregator
	Speaker  Speaker
	Interval time.Duration

	MinConfidence float64
	Threshold     float64

	OnFeedback func(alignment.Result)
}

func NewRunner(log *logger.Logger, cfg RunnerConfig) *Runner {
	r := &Runner{
		log:           log.With("component", "PracticeRunner"),
		source:        cfg.Source,
		target:        cfg.Target,
		agg:           cfg.Agg,
		speaker:       cfg.Speaker,
		interval:      cfg.Interval,
		minConfidence: cfg.MinConfidence,
		threshold:     cfg.Threshold,
		onFeedback:    cfg.OnFeedback,
	}
	if r.interval <= 0 {
		r.interval = 100 * time.Millisecond
	}
	if r.minConfidence <= 0 {
		r.minConfidence = alignment.DefaultMinConfidence
	}
	if r.threshold <= 0 {
		r.threshold = alignment.DefaultThreshold
	}
	return r
}

// SetVoice flips voice guidance and announces the change.
func (r *Runner) SetVoice(enabled bool) {
	r.mu.Lock()
	r.voiceEnabled = enabled
	r.mu.Unlock()
	if r.speaker == nil {
		return
	}
	if enabled {
		r.speaker.Speak(VoiceEnabledPhrase)
	} else {
		r.speaker.Speak(VoiceDisabledPhrase)
	}
}

func (r *Runner) voiceOn() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.voiceEnabled
}

// Run polls the frame source until ctx is cancelled, then releases it. Each
// tick consumes at most one frame; a source that is not ready simply yields
// the tick.
func (r *Runner) Run(ctx context.Context) {
	defer func() {
		if err := r.source.Close(); err != nil {
			r.log.Warn("Closing frame source failed", "error", err)
		}
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame, err := r.source.NextFrame()
			if err != nil {
				r.log.Warn("Frame source error", "error", err)
				continue
			}
			if frame == nil {
				continue
			}
			r.step(frame)
		}
	}
}

func (r *Runner) step(frame *Frame) {
	sample := alignment.Normalize(frame.Keypoints, frame.Width, frame.Height, r.minConfidence)
	res := alignment.Evaluate(sample, r.target, r.threshold)
	r.agg.Record(res.Accuracy)

	if r.onFeedback != nil {
		r.onFeedback(res)
	}
	if r.speaker != nil && r.voiceOn() {
		if phrase := res.SpokenPhrase(); phrase != "" {
			r.speaker.Speak(phrase)
		}
	}
}
