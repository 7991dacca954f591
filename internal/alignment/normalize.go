package alignment

import (
	"github.com/calmasana/calmasana-backend/internal/domain"
)

// DefaultMinConfidence is the detector score below which a keypoint is
// discarded as too noisy to correct against.
const DefaultMinConfidence = 0.5

// Normalize converts raw detector keypoints from pixel coordinates into the
// [0,1] space target geometry lives in. Keypoints scoring below
// minConfidence are dropped; an occluded joint is simply absent from the
// result. Pure function: same input, same output.
func Normalize(kps []domain.Keypoint, frameWidth, frameHeight, minConfidence float64) map[string]domain.Point {
	if frameWidth <= 0 || frameHeight <= 0 {
		return map[string]domain.Point{}
	}
	out := make(map[string]domain.Point, len(kps))
	for _, kp := range kps {
		if kp.Score < minConfidence {
			continue
		}
		out[kp.Name] = domain.Point{
			X: kp.X / frameWidth,
			Y: kp.Y / frameHeight,
		}
	}
	return out
}
