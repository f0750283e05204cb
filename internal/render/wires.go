package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/collider"
)

var (
	colliderColor = rl.NewColor(80, 220, 120, 255)
	selectedColor = rl.Yellow
)

// DrawColliderWire draws a collider's wireframe at position. Selected colliders draw
// in the highlight color. Must be called between BeginMode3D and EndMode3D.
func DrawColliderWire(desc collider.Descriptor, position [3]float32, selected bool) {
	color := colliderColor
	if selected {
		color = selectedColor
	}
	center := rl.NewVector3(position[0], position[1], position[2])

	switch desc.Kind {
	case collider.Sphere:
		rl.DrawSphereWires(center, desc.Radius, 12, 12, color)
	case collider.Cylinder:
		base := rl.NewVector3(position[0], position[1]-desc.HalfHeight, position[2])
		rl.DrawCylinderWires(base, desc.Radius, desc.Radius, desc.HalfHeight*2, 12, color)
	case collider.Capsule:
		lo := rl.NewVector3(position[0], position[1]-desc.HalfHeight, position[2])
		hi := rl.NewVector3(position[0], position[1]+desc.HalfHeight, position[2])
		rl.DrawCapsuleWires(lo, hi, desc.Radius, 8, 8, color)
	default:
		rl.DrawCubeWires(center, desc.Size[0], desc.Size[1], desc.Size[2], color)
	}
}

// DrawSelectionBox draws the highlight box around a selected object's bounds. min and
// max are world-space corners.
func DrawSelectionBox(min, max [3]float32) {
	center := rl.NewVector3((min[0]+max[0])/2, (min[1]+max[1])/2, (min[2]+max[2])/2)
	rl.DrawCubeWires(center, max[0]-min[0], max[1]-min[1], max[2]-min[2], selectedColor)
}

// DrawGizmo draws the three axis handles of the transform gizmo at center. axisLen
// matches the pick length used by the interaction math.
func DrawGizmo(center [3]float32, axisLen float32) {
	c := rl.NewVector3(center[0], center[1], center[2])
	rl.DrawLine3D(c, rl.NewVector3(center[0]+axisLen, center[1], center[2]), rl.Red)
	rl.DrawLine3D(c, rl.NewVector3(center[0], center[1]+axisLen, center[2]), rl.Green)
	rl.DrawLine3D(c, rl.NewVector3(center[0], center[1], center[2]+axisLen), rl.Blue)
}
