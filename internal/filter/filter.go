// Package filter provides the fixed set of convolution kernels offered by the
// editor.
package filter

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrUnknown reports a kernel name that is not registered.
var ErrUnknown = errors.New("unknown filter")

// Kernel is a square convolution matrix. Each output channel is
// sum(weight*sample)/Scale + Offset, clamped to [0,255].
type Kernel struct {
	Name    string
	Weights *mat.Dense
	Scale   float64
	Offset  float64
}

func newKernel(name string, size int, scale, offset float64, weights ...float64) Kernel {
	k := Kernel{Name: name, Weights: mat.NewDense(size, size, weights), Scale: scale, Offset: offset}
	if k.Scale == 0 {
		k.Scale = mat.Sum(k.Weights)
	}
	if k.Scale == 0 {
		k.Scale = 1
	}
	return k
}

var kernels = []Kernel{
	newKernel("Blur", 5, 16, 0,
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1),
	newKernel("Contour", 3, 1, 255,
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1),
	newKernel("Detail", 3, 6, 0,
		0, -1, 0,
		-1, 10, -1,
		0, -1, 0),
	newKernel("EdgeEnhance", 3, 2, 0,
		-1, -1, -1,
		-1, 10, -1,
		-1, -1, -1),
	newKernel("Emboss", 3, 1, 128,
		-1, 0, 0,
		0, 1, 0,
		0, 0, 0),
	newKernel("FindEdges", 3, 1, 0,
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1),
	newKernel("Sharpen", 3, 16, 0,
		-2, -2, -2,
		-2, 32, -2,
		-2, -2, -2),
	newKernel("Smooth", 3, 13, 0,
		1, 1, 1,
		1, 5, 1,
		1, 1, 1),
	newKernel("SmoothMore", 5, 100, 0,
		1, 1, 1, 1, 1,
		1, 5, 5, 5, 1,
		1, 5, 44, 5, 1,
		1, 5, 5, 5, 1,
		1, 1, 1, 1, 1),
}

// Names lists the registered kernels in menu order.
func Names() []string {
	names := make([]string, len(kernels))
	for i, k := range kernels {
		names[i] = k.Name
	}
	return names
}

// Lookup finds a kernel ignoring case and the separators '_', '-' and ' ',
// so "EDGE_ENHANCE" and "edge-enhance" both resolve to EdgeEnhance.
func Lookup(name string) (Kernel, bool) {
	want := normalize(name)
	if want == "" {
		return Kernel{}, false
	}
	for _, k := range kernels {
		if normalize(k.Name) == want {
			return k, true
		}
	}
	return Kernel{}, false
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Apply convolves src with the named kernel.
func Apply(name string, src *image.RGBA) (*image.RGBA, error) {
	k, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return k.Apply(src), nil
}

// Apply returns a new image of the same size. Samples outside src repeat the
// nearest edge pixel. Alpha is copied unchanged.
func (k Kernel) Apply(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	raw := k.Weights.RawMatrix()
	size := raw.Rows
	half := size / 2
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [3]float64
			for i := 0; i < size; i++ {
				sy := clamp(y+i-half, 0, h-1)
				row := src.Pix[sy*src.Stride:]
				for j := 0; j < size; j++ {
					wt := raw.Data[i*raw.Stride+j]
					if wt == 0 {
						continue
					}
					sx := clamp(x+j-half, 0, w-1) * 4
					acc[0] += wt * float64(row[sx])
					acc[1] += wt * float64(row[sx+1])
					acc[2] += wt * float64(row[sx+2])
				}
			}
			so := y*src.Stride + x*4
			do := y*out.Stride + x*4
			a := src.Pix[so+3]
			for c := 0; c < 3; c++ {
				// premultiplied channels never exceed alpha
				out.Pix[do+c] = min(toByte(acc[c]/k.Scale+k.Offset), a)
			}
			out.Pix[do+3] = a
		}
	}
	return out
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
