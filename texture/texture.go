package texture

import (
	"errors"

	"github.com/gogpu/swrast/pixelfmt"
)

// ErrAllocationFailure is returned when a Texture cannot acquire storage
// for the requested dimensions, per the fixed-function contract.
var ErrAllocationFailure = errors.New("swrast/texture: allocation failure")

// ErrInvalidDimensions is returned when Init is called with a zero
// dimension.
var ErrInvalidDimensions = errors.New("swrast/texture: width, height, and depth must all be >= 1")

// Texture owns pixel storage and exposes it through a View. Mutated by
// Init (which reallocates storage) and by pixel writes through the View.
// A zero-value Texture is valid and uninitialized; call Init before use.
type Texture struct {
	view View
	storage []byte
}

// NewTexture returns an uninitialized Texture. Call Init before sampling
// or writing to it.
func NewTexture() *Texture { return &Texture{} }

// Init (re)allocates the texture's storage for the given format and
// dimensions, invalidating any previously returned *View.
func (t *Texture) Init(format pixelfmt.ColorDataType, w, h, d uint16) error {
	if w == 0 || h == 0 || d == 0 {
		return ErrInvalidDimensions
	}

	bpt := pixelfmt.BytesPerTexel(format)
	total := int(w) * int(h) * int(d) * bpt
	if total <= 0 {
		return ErrAllocationFailure
	}

	storage := make([]byte, total)
	t.storage = storage
	t.view = View{
		Format: format,
		BytesPerTexel: bpt,
		Width: w,
		Height: h,
		Depth: d,
		NumChannels: uint8(pixelfmt.NumChannels(format)),
		Texels: storage,
	}
	return nil
}

// View returns the texture's current view descriptor. The returned pointer
// aliases the Texture's storage and is invalidated by the next Init call.
func (t *Texture) View() *View { return &t.view }

// Width, Height, Depth report the texture's current dimensions.
func (t *Texture) Width() int { return int(t.view.Width) }
func (t *Texture) Height() int { return int(t.view.Height) }
func (t *Texture) Depth() int { return int(t.view.Depth) }

// Format reports the texture's current pixel format.
func (t *Texture) Format() pixelfmt.ColorDataType { return t.view.Format }

// Valid reports whether Init has been called successfully.
func (t *Texture) Valid() bool { return t.storage != nil }
