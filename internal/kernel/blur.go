package kernel

import (
	"fmt"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/parallel"
)

// Image is a row-major greyscale image.
type Image struct {
	Width  int
	Height int
	Pix    []int32
}

// NewImage wraps pix as a width×height image.
func NewImage(width, height int, pix []int32) (Image, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return Image{}, apperrors.ValidationError{
			Field:   "image",
			Message: fmt.Sprintf("%d pixels do not fill a %dx%d image", len(pix), width, height),
		}
	}
	return Image{Width: width, Height: height, Pix: pix}, nil
}

// At returns the pixel at (row, col).
func (im Image) At(row, col int) int32 { return im.Pix[row*im.Width+col] }

// blurPixel returns the truncated mean of the in-bounds 3×3 neighbourhood of
// (row, col).
func blurPixel(im Image, row, col int) int32 {
	var sum, count int32
	for r := max(row-1, 0); r <= min(row+1, im.Height-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, im.Width-1); c++ {
			sum += im.At(r, c)
			count++
		}
	}
	return sum / count
}

func blurRows(im Image, first int, dst []int32) {
	for i := range dst {
		row, col := first+i/im.Width, i%im.Width
		dst[i] = blurPixel(im, row, col)
	}
}

// BlurSequential applies the 3×3 box blur to every pixel.
func BlurSequential(im Image) Image {
	out := Image{Width: im.Width, Height: im.Height, Pix: make([]int32, len(im.Pix))}
	if len(im.Pix) > 0 {
		blurRows(im, 0, out.Pix)
	}
	return out
}

// BlurParallel applies the 3×3 box blur with image rows statically
// partitioned across the executor's workers.
func BlurParallel(e *parallel.Executor, im Image) (Image, error) {
	out := Image{Width: im.Width, Height: im.Height, Pix: make([]int32, len(im.Pix))}
	if len(im.Pix) == 0 {
		return out, nil
	}
	arena, err := parallel.NewArena(out.Pix, im.Width)
	if err != nil {
		return Image{}, err
	}
	_, err = parallel.RunStatic(e, parallel.Range{Start: 0, End: im.Height}, func(p parallel.Partition) (struct{}, error) {
		blurRows(im, p.Start, arena.View(p))
		return struct{}{}, nil
	})
	if err != nil {
		return Image{}, err
	}
	return out, nil
}

// Summary implements Result.
func (im Image) Summary() string {
	var sum int64
	for _, p := range im.Pix {
		sum += int64(p)
	}
	return fmt.Sprintf("%dx%d checksum=%d", im.Width, im.Height, sum)
}

// Fingerprint implements Result.
func (im Image) Fingerprint() Fingerprint {
	values := make([]float64, len(im.Pix))
	for i, p := range im.Pix {
		values[i] = float64(p)
	}
	return Fingerprint{Values: values, Exact: true}
}
