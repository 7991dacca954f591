package practice

import (
	"math"
	"time"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

// Aggregator accumulates per-frame accuracy samples for one active session.
// It is owned by a single session and needs no locking of its own.
type Aggregator struct {
	samples []int
}

// Record appends one frame's accuracy score.
func (a *Aggregator) Record(score int) {
	a.samples = append(a.samples, score)
}

// Count reports how many samples are held.
func (a *Aggregator) Count() int {
	return len(a.samples)
}

// Summarize folds the recorded samples into a SessionSummary and clears
// them. Average accuracy is 0 when nothing was recorded; duration is the
// wall-clock span rounded to whole minutes, pauses included.
func (a *Aggregator) Summarize(start, end time.Time, poseName string) domain.SessionSummary {
	summary := domain.SessionSummary{
		Pose:            poseName,
		DurationMinutes: int(math.Round(end.Sub(start).Minutes())),
		AverageAccuracy: a.average(),
		Timestamp:       end,
	}
	a.samples = nil
	return summary
}

func (a *Aggregator) average() float64 {
	if len(a.samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range a.samples {
		sum += s
	}
	return float64(sum) / float64(len(a.samples))
}
