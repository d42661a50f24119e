package game

import "fmt"

// AssetResolutionError reports a texture reference that could not be turned
// into an image. Particle parsing returns it to the caller unchanged.
type AssetResolutionError struct {
	Ref string // The reference that was asked for
	Err error  // Underlying cause
}

func (e *AssetResolutionError) Error() string {
	return fmt.Sprintf("resolve texture %q: %v", e.Ref, e.Err)
}

func (e *AssetResolutionError) Unwrap() error {
	return e.Err
}
