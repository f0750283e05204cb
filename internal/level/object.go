// Package level holds the editable level data: scene object records and the store
// that owns them. Object positions here are always base positions; terrain height and
// model-origin offsets are render-time contributions and are never persisted.
package level

// ObjectType classifies a scene object.
type ObjectType string

const (
	TypeMesh     ObjectType = "mesh"
	TypeCamera   ObjectType = "camera"
	TypeCollider ObjectType = "collider"
)

// SceneObject is one editable entity in a level. Rotation is in degrees per axis.
type SceneObject struct {
	ID   string     `yaml:"id"`
	Name string     `yaml:"name,omitempty"`
	Type ObjectType `yaml:"type"`

	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`

	// Model is a reference into the asset system (e.g. a primitive name or file key).
	Model string `yaml:"model,omitempty"`

	HasCollider   bool       `yaml:"hasCollider,omitempty"`
	ColliderType  string     `yaml:"colliderType,omitempty"`
	ColliderScale [3]float32 `yaml:"colliderScale,omitempty"`

	CastShadow    bool `yaml:"castShadow,omitempty"`
	ReceiveShadow bool `yaml:"receiveShadow,omitempty"`

	Components     []string                  `yaml:"components,omitempty"`
	ComponentProps map[string]map[string]any `yaml:"componentProps,omitempty"`

	// TargetID is the object a camera looks at; unused for other types.
	TargetID string `yaml:"targetId,omitempty"`
}

// TransformUpdate is a partial object update: nil fields are left untouched when the
// update is merged into the canonical record. This is the payload a transform commit
// delivers: exactly the fields the drag changed.
type TransformUpdate struct {
	Position *[3]float32
	Rotation *[3]float32
	Scale    *[3]float32
}

// IsZero reports whether the update carries no fields.
func (u TransformUpdate) IsZero() bool {
	return u.Position == nil && u.Rotation == nil && u.Scale == nil
}

// UpdateFunc is the persistence callback invoked at transform commit time. The
// receiver merges the partial fields into its canonical record for the object.
type UpdateFunc func(objectID string, update TransformUpdate)
