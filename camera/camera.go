// Package camera maps between window pixels and simulation stage units.
package camera

// Stage describes how the simulation stage sits in the window. The
// container is the window area in use, capped at the maximum size and
// centered. The stage is the container divided by the scale factor, so a
// larger scale factor shows a smaller stage magnified.
type Stage struct {
	// Window dimensions
	WindowW, WindowH float64

	// Container dimensions and offset inside the window
	ContainerW, ContainerH float64
	OffsetX, OffsetY       float64

	// Container caps; 0 = unlimited
	MaxW, MaxH float64

	// Container pixels per stage unit
	Scale float64

	// Stage dimensions in simulation units
	W, H float64
}

// New creates a stage for the given window.
func New(windowW, windowH, maxW, maxH, scale float64) *Stage {
	s := &Stage{MaxW: maxW, MaxH: maxH, Scale: scale}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	s.layout(windowW, windowH)
	return s
}

// Resize updates the window dimensions. It reports whether the stage size
// changed.
func (s *Stage) Resize(windowW, windowH float64) bool {
	if windowW == s.WindowW && windowH == s.WindowH {
		return false
	}
	w, h := s.W, s.H
	s.layout(windowW, windowH)
	return w != s.W || h != s.H
}

// SetScale changes the scale factor. It reports whether the stage size
// changed.
func (s *Stage) SetScale(scale float64) bool {
	if scale <= 0 || scale == s.Scale {
		return false
	}
	s.Scale = scale
	s.layout(s.WindowW, s.WindowH)
	return true
}

func (s *Stage) layout(windowW, windowH float64) {
	s.WindowW, s.WindowH = windowW, windowH
	s.ContainerW = capped(windowW, s.MaxW)
	s.ContainerH = capped(windowH, s.MaxH)
	s.OffsetX = (windowW - s.ContainerW) / 2
	s.OffsetY = (windowH - s.ContainerH) / 2
	s.W = s.ContainerW / s.Scale
	s.H = s.ContainerH / s.Scale
}

func capped(v, limit float64) float64 {
	if limit > 0 && v > limit {
		return limit
	}
	return v
}

// StageToScreen converts stage coordinates to window pixels.
func (s *Stage) StageToScreen(x, y float64) (sx, sy float64) {
	return s.OffsetX + x*s.Scale, s.OffsetY + y*s.Scale
}

// ScreenToStage converts window pixels to stage coordinates.
func (s *Stage) ScreenToStage(sx, sy float64) (x, y float64) {
	return (sx - s.OffsetX) / s.Scale, (sy - s.OffsetY) / s.Scale
}

// Contains reports whether a window pixel falls inside the container.
func (s *Stage) Contains(sx, sy float64) bool {
	x, y := sx-s.OffsetX, sy-s.OffsetY
	return x >= 0 && y >= 0 && x < s.ContainerW && y < s.ContainerH
}

// PointerLaunch converts a pointer position into the normalized launch
// position and burst height used by shells: x grows to the right, height
// grows upward. ok is false outside the container.
func (s *Stage) PointerLaunch(sx, sy float64) (position, height float64, ok bool) {
	if !s.Contains(sx, sy) || s.ContainerW == 0 || s.ContainerH == 0 {
		return 0, 0, false
	}
	position = (sx - s.OffsetX) / s.ContainerW
	height = 1 - (sy-s.OffsetY)/s.ContainerH
	return position, height, true
}
