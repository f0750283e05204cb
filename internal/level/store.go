package level

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Store owns the canonical object records for one editing session. Reads hand out
// deep copies so callers cannot mutate canonical state behind the store's back; all
// writes go through Add/ApplyUpdate/Remove. Single-threaded: the editor is
// frame-driven with no parallel mutation.
type Store struct {
	objects map[string]*SceneObject
	order   []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{objects: make(map[string]*SceneObject)}
}

// Add inserts an object and returns its ID, minting a UUID when the record has none.
// Zero scale components default to 1 so freshly created objects are visible.
func (s *Store) Add(obj SceneObject) string {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	for i := range obj.Scale {
		if obj.Scale[i] == 0 {
			obj.Scale[i] = 1
		}
	}
	if _, exists := s.objects[obj.ID]; !exists {
		s.order = append(s.order, obj.ID)
	}
	stored := obj
	s.objects[obj.ID] = &stored
	return obj.ID
}

// Get returns a deep copy of the object and whether it exists.
func (s *Store) Get(id string) (SceneObject, bool) {
	obj, ok := s.objects[id]
	if !ok {
		return SceneObject{}, false
	}
	var out SceneObject
	_ = copier.CopyWithOption(&out, obj, copier.Option{DeepCopy: true})
	return out, true
}

// List returns deep copies of all objects in insertion order.
func (s *Store) List() []SceneObject {
	out := make([]SceneObject, 0, len(s.order))
	for _, id := range s.order {
		if obj, ok := s.Get(id); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Len returns the number of objects.
func (s *Store) Len() int {
	return len(s.objects)
}

// Remove deletes an object. Removing an unknown ID is a no-op.
func (s *Store) Remove(id string) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ApplyUpdate merges a partial transform update into the canonical record. This is the
// level store's UpdateFunc; transform sessions call it exactly once per drag.
func (s *Store) ApplyUpdate(objectID string, update TransformUpdate) {
	obj, ok := s.objects[objectID]
	if !ok {
		return
	}
	if update.Position != nil {
		obj.Position = *update.Position
	}
	if update.Rotation != nil {
		obj.Rotation = *update.Rotation
	}
	if update.Scale != nil {
		obj.Scale = *update.Scale
	}
}

// validate reports the first structural problem in a loaded level, or nil.
func validate(objects []SceneObject) error {
	seen := make(map[string]bool, len(objects))
	for i, obj := range objects {
		if obj.ID == "" {
			return fmt.Errorf("level: object %d has no id", i)
		}
		if seen[obj.ID] {
			return fmt.Errorf("level: duplicate object id %q", obj.ID)
		}
		seen[obj.ID] = true
	}
	return nil
}
