package vision

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"gocv.io/x/gocv"
	"golang.org/x/net/context"
)

const (
	recognizerInputWidth  = 94
	recognizerInputHeight = 24

	// character set the recognition model was trained with; the trailing
	// "-" is the CTC blank
	recognizerCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-"
)

// ctcRecognizer reads plate text with an LPRNet-style recognition model:
// one output column per plate position, greedy argmax over the charset,
// repeated characters collapsed and blanks dropped.
type ctcRecognizer struct {
	net     gocv.Net
	charset []string
	mu      sync.Mutex
}

// NewRecognizer loads the ONNX text-recognition model from RECOGNIZER_MODEL_PATH.
func NewRecognizer() (Recognizer, error) {
	modelPath := os.Getenv("RECOGNIZER_MODEL_PATH")
	if modelPath == "" {
		modelPath = "models/plate-rec.onnx"
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load recognition model from %s", modelPath)
	}

	return &ctcRecognizer{
		net:     net,
		charset: strings.Split(recognizerCharset, ""),
	}, nil
}

func (r *ctcRecognizer) Recognize(ctx context.Context, region Frame) ([]string, error) {
	if region == nil || region.Empty() {
		return nil, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mf, ok := region.(*matFrame)
	if !ok {
		return nil, fmt.Errorf("recognizer requires a decoded frame")
	}

	// the model expects RGB input while frames are BGR
	rgb := gocv.NewMat()
	gocv.CvtColor(mf.mat, &rgb, gocv.ColorBGRToRGB)
	defer rgb.Close()

	resized := gocv.NewMat()
	gocv.Resize(rgb, &resized, image.Pt(recognizerInputWidth, recognizerInputHeight), 0, 0, gocv.InterpolationArea)
	defer resized.Close()

	blob := gocv.BlobFromImage(resized, 1.0/128.0,
		image.Pt(recognizerInputWidth, recognizerInputHeight),
		gocv.NewScalar(127.5, 127.5, 127.5, 0), false, false)
	defer blob.Close()

	r.mu.Lock()
	r.net.SetInput(blob, "")
	output := r.net.Forward("")
	r.mu.Unlock()
	defer output.Close()

	text, err := r.decode(output)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	return []string{text}, nil
}

// decode performs greedy CTC decoding over an output tensor shaped
// [1, charset, positions].
func (r *ctcRecognizer) decode(output gocv.Mat) (string, error) {
	dims := output.Size()
	if len(dims) != 3 {
		return "", fmt.Errorf("unexpected recognizer output shape %v", dims)
	}

	numChars := dims[1]
	positions := dims[2]
	if numChars > len(r.charset) {
		numChars = len(r.charset)
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return "", fmt.Errorf("failed to read recognizer output: %w", err)
	}

	blank := len(r.charset) - 1
	var sb strings.Builder
	prev := -1

	for pos := 0; pos < positions; pos++ {
		best := 0
		bestVal := data[0*positions+pos]
		for c := 1; c < numChars; c++ {
			if v := data[c*positions+pos]; v > bestVal {
				bestVal = v
				best = c
			}
		}

		if best != blank && best != prev {
			sb.WriteString(r.charset[best])
		}
		prev = best
	}

	return sb.String(), nil
}
