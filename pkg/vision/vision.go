package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
	"golang.org/x/net/context"
)

var (
	ErrInvalidImage = errors.New("invalid or undecodable image")
)

// Box is a single detection produced by a Detector, in source-image pixel
// coordinates with X1 < X2 and Y1 < Y2.
type Box struct {
	ClassID    int
	Confidence float64
	X1         int
	Y1         int
	X2         int
	Y2         int
}

// Frame is a decoded BGR bitmap. Region returns a view that shares pixel
// data with the parent, so the parent must outlive every region taken
// from it. Clone returns an independent copy with its own buffer. Close
// releases the underlying buffer.
type Frame interface {
	Cols() int
	Rows() int
	Empty() bool
	Region(r image.Rectangle) Frame
	Clone() Frame
	WriteFile(path string) error
	Close()
}

type Detector interface {
	Detect(ctx context.Context, frame Frame) ([]Box, error)
}

type Recognizer interface {
	Recognize(ctx context.Context, region Frame) ([]string, error)
}

type matFrame struct {
	mat gocv.Mat
}

// Decode decodes JPEG/PNG bytes into a BGR Frame. Corrupt bytes or a
// zero-dimension result yield ErrInvalidImage.
func Decode(buf []byte) (Frame, error) {
	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return nil, ErrInvalidImage
	}

	if mat.Empty() || mat.Cols() == 0 || mat.Rows() == 0 {
		mat.Close()
		return nil, ErrInvalidImage
	}

	return &matFrame{mat: mat}, nil
}

func (f *matFrame) Cols() int   { return f.mat.Cols() }
func (f *matFrame) Rows() int   { return f.mat.Rows() }
func (f *matFrame) Empty() bool { return f.mat.Empty() }

func (f *matFrame) Region(r image.Rectangle) Frame {
	region := f.mat.Region(r)
	return &matFrame{mat: region}
}

func (f *matFrame) Clone() Frame {
	return &matFrame{mat: f.mat.Clone()}
}

func (f *matFrame) WriteFile(path string) error {
	if ok := gocv.IMWrite(path, f.mat); !ok {
		return errors.New("failed to write image to " + path)
	}
	return nil
}

func (f *matFrame) Close() {
	f.mat.Close()
}

// ExpandAndClamp grows the box by margin pixels on every side and clamps
// the result to [0,cols) x [0,rows). ok is false when the clamped
// rectangle has no area, meaning the box should be skipped.
func ExpandAndClamp(b Box, margin, cols, rows int) (image.Rectangle, bool) {
	x1 := b.X1 - margin
	y1 := b.Y1 - margin
	x2 := b.X2 + margin
	y2 := b.Y2 + margin

	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > cols {
		x2 = cols
	}
	if y2 > rows {
		y2 = rows
	}

	if x2 <= x1 || y2 <= y1 {
		return image.Rectangle{}, false
	}

	return image.Rect(x1, y1, x2, y2), true
}
