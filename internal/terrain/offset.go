// Package terrain ties the heightmap grid to the scene: the model-origin offset that
// rests a mesh's lowest point on the ground, the single visual-position formula shared
// by the interactive editor and the preview renderer, and the per-frame reconcile step
// between committed and visual transforms.
package terrain

import (
	"level-editor/internal/heightmap"
	"level-editor/internal/level"
)

// Bounds is a model's local-space bounding box, computed once from its untransformed
// geometry by the asset system.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// BoundsProvider supplies local bounding boxes for model references. The second return
// is false while the model is not loaded yet, treated as "not ready", at which point
// the offset is 0 and the object sits at its raw base height until the model arrives.
type BoundsProvider interface {
	ModelBounds(model string) (Bounds, bool)
}

// offsetKey caches the derived offset per (model, scaleY). Including the scale in the
// key means a scale change naturally recomputes the offset; the value is derived state
// and is never persisted.
type offsetKey struct {
	model  string
	scaleY float32
}

// OffsetModel computes and caches per-object vertical offsets: the shift that brings a
// model's lowest geometry point up to its local origin's Y=0, so the object's base
// position implies where the model's feet are, not its origin.
type OffsetModel struct {
	provider BoundsProvider
	cache    map[offsetKey]float32
}

// NewOffsetModel returns an offset model reading bounding boxes from provider.
// A nil provider always yields offset 0.
func NewOffsetModel(provider BoundsProvider) *OffsetModel {
	return &OffsetModel{
		provider: provider,
		cache:    make(map[offsetKey]float32),
	}
}

// ModelOffset returns -minY(model bounding box) * scaleY: the vertical shift that puts
// the model's lowest point at the surface its position implies. Returns 0 for an empty
// model reference or one whose bounds are not available yet.
func (m *OffsetModel) ModelOffset(model string, scaleY float32) float32 {
	if m == nil || m.provider == nil || model == "" {
		return 0
	}
	key := offsetKey{model: model, scaleY: scaleY}
	if off, ok := m.cache[key]; ok {
		return off
	}
	b, ok := m.provider.ModelBounds(model)
	if !ok {
		// Not ready; do not cache so a later call sees the loaded bounds.
		return 0
	}
	off := -b.Min[1] * scaleY
	m.cache[key] = off
	return off
}

// Invalidate drops cached offsets for a model, e.g. after the asset is reloaded.
func (m *OffsetModel) Invalidate(model string) {
	for k := range m.cache {
		if k.model == model {
			delete(m.cache, k)
		}
	}
}

// VisualY composes the rendered height from the stored base height:
//
//	visualY = baseY + terrainHeight(x,z) + modelOffset
//
// This is the one formula both render paths use; BaseY is its exact inverse, used when
// a transform commit strips the visual-only contributions back out.
func VisualY(baseY, terrainHeight, modelOffset float32) float32 {
	return baseY + terrainHeight + modelOffset
}

// BaseY inverts VisualY.
func BaseY(visualY, terrainHeight, modelOffset float32) float32 {
	return visualY - terrainHeight - modelOffset
}

// TerrainRelative reports whether an object type rides the terrain surface. Meshes and
// colliders are placed relative to the ground; cameras hold absolute positions.
func TerrainRelative(t level.ObjectType) bool {
	return t == level.TypeMesh || t == level.TypeCollider
}

// VisualPosition maps an object's stored base position to the position its scene node
// renders at, given the current grid. Both the interactive editor view and the
// runtime/preview renderer call this rather than reimplementing the formula.
func VisualPosition(obj level.SceneObject, offsets *OffsetModel, grid heightmap.Grid, terrainSize float32) [3]float32 {
	pos := obj.Position
	if !TerrainRelative(obj.Type) {
		return pos
	}
	h := grid.SampleWorld(terrainSize, pos[0], pos[2])
	off := offsets.ModelOffset(obj.Model, obj.Scale[1])
	pos[1] = VisualY(obj.Position[1], h, off)
	return pos
}
