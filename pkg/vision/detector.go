package vision

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
	"golang.org/x/net/context"
)

const (
	detectorInputSize = 640
)

// yoloDetector runs a single-class YOLO plate-detection model through the
// OpenCV DNN backend. The net is loaded once and shared; Forward is not
// safe for concurrent use, so inference is serialized with a mutex.
type yoloDetector struct {
	net       gocv.Net
	inputSize int
	mu        sync.Mutex
}

// NewDetector loads the ONNX plate-detection model from DETECTOR_MODEL_PATH.
func NewDetector() (Detector, error) {
	modelPath := os.Getenv("DETECTOR_MODEL_PATH")
	if modelPath == "" {
		modelPath = "models/plate-detect.onnx"
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load detection model from %s", modelPath)
	}

	inputSize := detectorInputSize
	if v := os.Getenv("DETECTOR_INPUT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			inputSize = n
		}
	}

	return &yoloDetector{net: net, inputSize: inputSize}, nil
}

func (d *yoloDetector) Detect(ctx context.Context, frame Frame) ([]Box, error) {
	if frame == nil || frame.Empty() {
		return nil, ErrInvalidImage
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mf, ok := frame.(*matFrame)
	if !ok {
		return nil, fmt.Errorf("detector requires a decoded frame")
	}

	blob := gocv.BlobFromImage(mf.mat, 1.0/255.0,
		image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	return d.parseOutput(output, frame.Cols(), frame.Rows())
}

// parseOutput reads a YOLOv8-layout output tensor [1, 4+nc, n] and maps
// candidate boxes back to source-image coordinates.
func (d *yoloDetector) parseOutput(output gocv.Mat, srcCols, srcRows int) ([]Box, error) {
	dims := output.Size()
	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected detector output shape %v", dims)
	}

	channels := dims[1]
	candidates := dims[2]
	numClasses := channels - 4
	if numClasses < 1 {
		return nil, fmt.Errorf("detector output has no class channels")
	}

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("failed to read detector output: %w", err)
	}

	scaleX := float32(srcCols) / float32(d.inputSize)
	scaleY := float32(srcRows) / float32(d.inputSize)

	var rects []image.Rectangle
	var scores []float32
	var classIDs []int

	for i := 0; i < candidates; i++ {
		classID := 0
		score := data[4*candidates+i]
		for c := 1; c < numClasses; c++ {
			if s := data[(4+c)*candidates+i]; s > score {
				score = s
				classID = c
			}
		}

		// low-scoring candidates are dropped here; the strict business
		// threshold is applied later by the pipeline
		if score < 0.25 {
			continue
		}

		cx := data[0*candidates+i]
		cy := data[1*candidates+i]
		w := data[2*candidates+i]
		h := data[3*candidates+i]

		x1 := int((cx - w/2) * scaleX)
		y1 := int((cy - h/2) * scaleY)
		x2 := int((cx + w/2) * scaleX)
		y2 := int((cy + h/2) * scaleY)

		rects = append(rects, image.Rect(x1, y1, x2, y2))
		scores = append(scores, score)
		classIDs = append(classIDs, classID)
	}

	if len(rects) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(rects, scores, 0.25, 0.45)

	boxes := make([]Box, 0, len(indices))
	for _, idx := range indices {
		r := rects[idx]
		boxes = append(boxes, Box{
			ClassID:    classIDs[idx],
			Confidence: float64(scores[idx]),
			X1:         r.Min.X,
			Y1:         r.Min.Y,
			X2:         r.Max.X,
			Y2:         r.Max.Y,
		})
	}

	return boxes, nil
}
