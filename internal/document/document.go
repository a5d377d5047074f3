package document

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/google/uuid"
)

// Document owns the canonical bitmap of the image being edited. The bitmap
// always has its origin at (0,0) so its bounds are [0,w)x[0,h).
type Document struct {
	id   string
	path string
	img  *image.RGBA
}

// New creates a document holding a zero-origin RGBA copy of img.
func New(img image.Image) (*Document, error) {
	if img == nil {
		return nil, fmt.Errorf("new document: %w: nil image", ErrMissingResource)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("new document: %w: empty image %v", ErrInvalidGeometry, img.Bounds())
	}
	return &Document{id: uuid.NewString(), img: toRGBA(img)}, nil
}

// Loader decodes the image stored at path.
type Loader func(path string) (image.Image, error)

// Open decodes path with load and records it as the document's path.
func Open(path string, load Loader) (*Document, error) {
	img, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d, err := New(img)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// ID returns the identity assigned when the document was created.
func (d *Document) ID() string { return d.id }

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string { return d.path }

// SetPath records the file backing the document.
func (d *Document) SetPath(p string) { d.path = p }

// Bitmap returns the current bitmap. Callers must not mutate it.
func (d *Document) Bitmap() *image.RGBA { return d.img }

func (d *Document) Width() int { return d.img.Bounds().Dx() }

func (d *Document) Height() int { return d.img.Bounds().Dy() }

func (d *Document) Bounds() image.Rectangle { return d.img.Bounds() }

// Clone returns an independent copy sharing the identity and path.
func (d *Document) Clone() *Document {
	return &Document{id: d.id, path: d.path, img: cloneRGBA(d.img)}
}

// Apply runs cmd against the current bitmap. The result replaces the bitmap
// only when cmd succeeds.
func (d *Document) Apply(cmd Command) error {
	if d == nil || d.img == nil {
		return ErrNoDocumentLoaded
	}
	out, err := cmd.Apply(d.img)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	d.img = out
	return nil
}

// ApplyFilter convolves the whole bitmap with the named kernel.
func (d *Document) ApplyFilter(name string) error {
	return d.Apply(Filter{Kernel: name})
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	if b.Min != (image.Point{}) || src.Stride != 4*b.Dx() {
		return toRGBA(src)
	}
	out := image.NewRGBA(b)
	copy(out.Pix, src.Pix)
	return out
}
