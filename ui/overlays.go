package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD      OverlayID = "hud"
	OverlayControls OverlayID = "controls"
	OverlayPerf     OverlayID = "perf"
	OverlayStage    OverlayID = "stage_bounds"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID // Unique identifier
	Name     string    // Display name
	Key      int32     // Keyboard key to toggle (0 = no key)
	KeyLabel string    // Key label for display (e.g., "H")
	Category string    // Grouping ("display", "debug")
	Default  bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:       OverlayHUD,
		Name:     "Status",
		Key:      rl.KeyH,
		KeyLabel: "H",
		Category: "display",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayControls,
		Name:     "Key Legend",
		Key:      rl.KeyK,
		KeyLabel: "K",
		Category: "display",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Frame Timing",
		Key:      rl.KeyP,
		KeyLabel: "P",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayStage,
		Name:     "Stage Bounds",
		Key:      rl.KeyB,
		KeyLabel: "B",
		Category: "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}
