package poses

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/calmasana/calmasana-backend/internal/domain"
)

// POSE_CATALOG_YAML may point at an external catalog file; the embedded
// catalog is used otherwise.
const catalogEnv = "POSE_CATALOG_YAML"

//go:embed catalog.yaml
var catalogFS embed.FS

// TrackedJoints is the fixed joint set the alignment engine checks, in
// detector naming.
var TrackedJoints = []string{
	"left_shoulder",
	"right_shoulder",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
}

// skeleton pairs joints for client-side rendering of the estimated pose.
var skeleton = [][2]string{
	{"left_shoulder", "right_shoulder"},
	{"left_shoulder", "left_elbow"},
	{"right_shoulder", "right_elbow"},
	{"left_elbow", "left_wrist"},
	{"right_elbow", "right_wrist"},
	{"left_shoulder", "left_hip"},
	{"right_shoulder", "right_hip"},
	{"left_hip", "right_hip"},
	{"left_hip", "left_knee"},
	{"right_hip", "right_knee"},
	{"left_knee", "left_ankle"},
	{"right_knee", "right_ankle"},
}

// Catalog is the load-once, read-only pose knowledge base.
type Catalog struct {
	poses  []domain.Pose
	byName map[string]int
}

type catalogFile struct {
	Poses []domain.Pose `yaml:"poses"`
}

// Load parses the catalog and validates it. The catalog never mutates after
// this returns.
func Load() (*Catalog, error) {
	raw, err := readCatalog()
	if err != nil {
		return nil, fmt.Errorf("read pose catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse pose catalog: %w", err)
	}
	if len(cf.Poses) == 0 {
		return nil, fmt.Errorf("pose catalog is empty")
	}

	byName := make(map[string]int, len(cf.Poses))
	for i, p := range cf.Poses {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("pose %d has no name", i)
		}
		if _, dup := byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate pose %q", p.Name)
		}
		if err := validatePose(p); err != nil {
			return nil, fmt.Errorf("pose %q: %w", p.Name, err)
		}
		byName[p.Name] = i
	}
	return &Catalog{poses: cf.Poses, byName: byName}, nil
}

func readCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(catalogEnv)); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			return b, nil
		}
	}
	return catalogFS.ReadFile("catalog.yaml")
}

func validatePose(p domain.Pose) error {
	switch p.Level {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("unknown level %q", p.Level)
	}
	switch p.Intensity {
	case domain.IntensityLow, domain.IntensityModerate, domain.IntensityHigh:
	default:
		return fmt.Errorf("unknown intensity %q", p.Intensity)
	}
	if len(p.Goals) == 0 {
		return fmt.Errorf("no goals")
	}
	for joint, pt := range p.TargetGeometry {
		if pt.X < 0 || pt.X > 1 || pt.Y < 0 || pt.Y > 1 {
			return fmt.Errorf("joint %q outside [0,1]", joint)
		}
	}
	return nil
}

// All returns the poses in catalog order.
func (c *Catalog) All() []domain.Pose {
	out := make([]domain.Pose, len(c.poses))
	copy(out, c.poses)
	return out
}

// ByName looks a pose up by its unique name.
func (c *Catalog) ByName(name string) (domain.Pose, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Pose{}, false
	}
	return c.poses[i], true
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	return len(c.poses)
}

// Connections returns the joint pairs clients draw skeleton lines between.
func Connections() [][2]string {
	out := make([][2]string, len(skeleton))
	copy(out, skeleton)
	return out
}
