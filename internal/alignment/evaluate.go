package alignment

import (
	"fmt"
	"math"
	"strings"

	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/poses"
)

// DefaultThreshold is the normalized deviation beyond which a joint counts
// as misaligned.
const DefaultThreshold = 0.1

const (
	feedbackHeader  = "Good effort! Adjust the following:"
	perfectFeedback = "Great job! Your pose looks perfect."
)

// Result is one frame's alignment verdict.
type Result struct {
	// Lines are the display corrections, one or two per misaligned joint,
	// in tracked-joint order.
	Lines []string `json:"lines"`
	// Spoken are the voice-friendly phrasings of the same corrections.
	Spoken []string `json:"spoken"`
	// Accuracy is the frame score in [0,100].
	Accuracy int `json:"accuracy"`
}

// SpokenPhrase is the single highest-priority phrase for voice guidance: the
// first correction generated, or the affirmation when the pose is clean.
func (r Result) SpokenPhrase() string {
	if len(r.Spoken) == 0 {
		return ""
	}
	return r.Spoken[0]
}

// Text renders the display feedback as a single block.
func (r Result) Text() string {
	if len(r.Lines) == 1 && r.Lines[0] == perfectFeedback {
		return perfectFeedback
	}
	return feedbackHeader + "\n" + strings.Join(r.Lines, "\n")
}

// Evaluate compares a normalized keypoint sample against a pose's target
// geometry. Each tracked joint present in both maps deducts 10 from the
// accuracy when its x or y deviation exceeds the threshold, and contributes
// a directional correction per exceeded axis. Joints missing from the sample
// are skipped: absence is not a mismatch.
func Evaluate(sample, target map[string]domain.Point, threshold float64) Result {
	res := Result{Accuracy: 100}

	for _, joint := range poses.TrackedJoints {
		user, okUser := sample[joint]
		want, okTarget := target[joint]
		if !okUser || !okTarget {
			continue
		}
		xDiff := math.Abs(user.X - want.X)
		yDiff := math.Abs(user.Y - want.Y)
		if xDiff <= threshold && yDiff <= threshold {
			continue
		}

		res.Accuracy -= 10
		label := strings.ReplaceAll(joint, "_", " ")
		if yDiff > threshold {
			direction := "raise"
			if user.Y < want.Y {
				direction = "lower"
			}
			res.Lines = append(res.Lines, fmt.Sprintf("- %s: %s your position", label, direction))
			res.Spoken = append(res.Spoken, fmt.Sprintf("%s your %s", direction, label))
		}
		if xDiff > threshold {
			// Mirrored camera: the user drifting left of target on screen
			// means they should move right.
			direction := "move left"
			if user.X < want.X {
				direction = "move right"
			}
			res.Lines = append(res.Lines, fmt.Sprintf("- %s: %s", label, direction))
			res.Spoken = append(res.Spoken, fmt.Sprintf("%s your %s", direction, label))
		}
	}

	if res.Accuracy < 0 {
		res.Accuracy = 0
	}
	if len(res.Lines) == 0 {
		res.Lines = []string{perfectFeedback}
		res.Spoken = []string{perfectFeedback}
	}
	return res
}
