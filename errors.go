package swrast

import (
	"errors"
	"fmt"
)

// Sentinel errors for the public API, per the fixed-function contract.
var (
	// ErrInvalidHandle is returned by any API call with a handle that is
	// out of range or has already been destroyed.
	ErrInvalidHandle = errors.New("swrast: invalid handle")

	// ErrInvalidFramebuffer is returned by Draw and DrawMultiple, wrapping
	// the framebuffer package's error, when the target framebuffer fails
	// Validate: it has zero color attachments or its attachments disagree
	// in dimensions.
	ErrInvalidFramebuffer = errors.New("swrast: invalid framebuffer")

	// ErrInvalidFormat names a blit, clear, or sample that targets a format
	// with no codec implementation. Every pixelfmt.ColorDataType has a
	// codec, and no function in this module returns it.
	ErrInvalidFormat = errors.New("swrast: invalid pixel format")

	// ErrAllocationFailure is returned by CreateTexture, wrapping
	// texture.ErrAllocationFailure, when texture initialization could not
	// acquire storage.
	ErrAllocationFailure = errors.New("swrast: allocation failure")
)

// FramebufferMismatchError reports which two attachments disagreed in
// dimensions. No function in this module constructs one: Validate reports
// a mismatch as framebuffer.ErrDimensionMismatch, which Draw returns
// wrapped in ErrInvalidFramebuffer.
type FramebufferMismatchError struct {
	AttachmentA, AttachmentB string
	WidthA, HeightA int
	WidthB, HeightB int
}

func (e *FramebufferMismatchError) Error() string {
	return fmt.Sprintf("swrast: attachment %q (%dx%d) does not match attachment %q (%dx%d)",
		e.AttachmentA, e.WidthA, e.HeightA, e.AttachmentB, e.WidthB, e.HeightB)
}

func (e *FramebufferMismatchError) Unwrap() error { return ErrInvalidFramebuffer }
