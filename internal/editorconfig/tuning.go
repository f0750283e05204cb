package editorconfig

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TuningPath is the path to the interaction tuning file. Absent file = defaults.
const TuningPath = "config/tuning.yaml"

// Tuning holds the empirically-tuned interaction constants. The guard windows and
// thresholds were arrived at by feel; what correctness depends on is their ordering
// (drag window shorter than the transform protection window), not the exact
// millisecond values, so they live in configuration rather than code.
type Tuning struct {
	// DragThresholdPx: pointer movement below this many pixels between down and up is
	// a click, not a drag.
	DragThresholdPx float32 `yaml:"dragThresholdPx"`

	// ClickGuard: clicks this soon after a pointer-up that ended a drag are treated as
	// the drag's trailing synthetic click.
	ClickGuard time.Duration `yaml:"clickGuard"`
	// TransformProtection: after a transform session ends, empty-space clicks cannot
	// deselect the transformed object for this long.
	TransformProtection time.Duration `yaml:"transformProtection"`
	// TransformingRelease: how long the transforming-object mark outlives the session
	// end, released in two stages to tolerate overlapping event races.
	TransformingRelease time.Duration `yaml:"transformingRelease"`
	// TransformingFirstStage: the first, shorter stage of the release above.
	TransformingFirstStage time.Duration `yaml:"transformingFirstStage"`

	// TranslateSnap is the grid increment for translation snapping.
	TranslateSnap float32 `yaml:"translateSnap"`
	// RotateSnapDeg is the angular snap increment, in degrees.
	RotateSnapDeg float32 `yaml:"rotateSnapDeg"`
	// ScaleSnap is the scale snap increment.
	ScaleSnap float32 `yaml:"scaleSnap"`

	// VerticalMinDelta and VerticalRatio control the translate-drag vertical heuristic:
	// a drag counts as vertical only when |dY| exceeds VerticalMinDelta AND is at least
	// VerticalRatio times the larger horizontal delta.
	VerticalMinDelta float32 `yaml:"verticalMinDelta"`
	VerticalRatio    float32 `yaml:"verticalRatio"`

	// Scale clamp ranges per object kind: meshes stay in a tight range, colliders
	// (walls, trigger volumes) may be far larger.
	MeshScaleMin     float32 `yaml:"meshScaleMin"`
	MeshScaleMax     float32 `yaml:"meshScaleMax"`
	ColliderScaleMin float32 `yaml:"colliderScaleMin"`
	ColliderScaleMax float32 `yaml:"colliderScaleMax"`
}

// DefaultTuning returns the tuning shipped with the editor.
func DefaultTuning() Tuning {
	return Tuning{
		DragThresholdPx:        5,
		ClickGuard:             500 * time.Millisecond,
		TransformProtection:    3000 * time.Millisecond,
		TransformingRelease:    3000 * time.Millisecond,
		TransformingFirstStage: 2500 * time.Millisecond,

		TranslateSnap: 1,
		RotateSnapDeg: 45,
		ScaleSnap:     0.1,

		VerticalMinDelta: 0.1,
		VerticalRatio:    3,

		MeshScaleMin:     0.1,
		MeshScaleMax:     10,
		ColliderScaleMin: 0.1,
		ColliderScaleMax: 200,
	}
}

// sanitized replaces non-positive values with their defaults so a partially filled
// tuning file cannot switch a guard off by accident.
func (t Tuning) sanitized() Tuning {
	d := DefaultTuning()
	if t.DragThresholdPx <= 0 {
		t.DragThresholdPx = d.DragThresholdPx
	}
	if t.ClickGuard <= 0 {
		t.ClickGuard = d.ClickGuard
	}
	if t.TransformProtection <= 0 {
		t.TransformProtection = d.TransformProtection
	}
	if t.TransformingRelease <= 0 {
		t.TransformingRelease = d.TransformingRelease
	}
	if t.TransformingFirstStage <= 0 || t.TransformingFirstStage > t.TransformingRelease {
		t.TransformingFirstStage = t.TransformingRelease / 2
	}
	if t.TranslateSnap <= 0 {
		t.TranslateSnap = d.TranslateSnap
	}
	if t.RotateSnapDeg <= 0 {
		t.RotateSnapDeg = d.RotateSnapDeg
	}
	if t.ScaleSnap <= 0 {
		t.ScaleSnap = d.ScaleSnap
	}
	if t.VerticalMinDelta <= 0 {
		t.VerticalMinDelta = d.VerticalMinDelta
	}
	if t.VerticalRatio <= 0 {
		t.VerticalRatio = d.VerticalRatio
	}
	if t.MeshScaleMin <= 0 || t.MeshScaleMax <= t.MeshScaleMin {
		t.MeshScaleMin, t.MeshScaleMax = d.MeshScaleMin, d.MeshScaleMax
	}
	if t.ColliderScaleMin <= 0 || t.ColliderScaleMax <= t.ColliderScaleMin {
		t.ColliderScaleMin, t.ColliderScaleMax = d.ColliderScaleMin, d.ColliderScaleMax
	}
	return t
}

// LoadTuning reads config/tuning.yaml. Missing or unparseable files return the
// defaults; individual zero/negative fields are replaced with their defaults.
func LoadTuning() Tuning {
	data, err := os.ReadFile(TuningPath)
	if err != nil {
		return DefaultTuning()
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning()
	}
	return t.sanitized()
}
