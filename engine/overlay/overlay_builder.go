package overlay

// OverlayBuilderOption is a functional option for configuring an Overlay.
type OverlayBuilderOption func(*overlay)

// WithGizmoOffset sets the initial gizmo viewport origin.
//
// Parameters:
//   - offset: x and y in pixels, clamped to the slider range
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithGizmoOffset(offset [2]float32) OverlayBuilderOption {
	return func(o *overlay) {
		for i, v := range offset {
			o.gizmoOffset[i] = min(max(v, gizmoMin), gizmoMax)
		}
	}
}
