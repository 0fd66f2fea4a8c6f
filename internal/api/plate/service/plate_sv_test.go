package plateService

import (
	"ProjectPlacas/internal/api/plate"
	"ProjectPlacas/pkg/utils"
	"ProjectPlacas/pkg/vision"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type stubFrame struct {
	cols, rows int
	written    []string
}

func (f *stubFrame) Cols() int   { return f.cols }
func (f *stubFrame) Rows() int   { return f.rows }
func (f *stubFrame) Empty() bool { return f.cols == 0 || f.rows == 0 }

func (f *stubFrame) Region(r image.Rectangle) vision.Frame {
	return &stubFrame{cols: r.Dx(), rows: r.Dy()}
}

func (f *stubFrame) Clone() vision.Frame {
	return &stubFrame{cols: f.cols, rows: f.rows}
}

func (f *stubFrame) WriteFile(path string) error {
	f.written = append(f.written, path)
	return nil
}

func (f *stubFrame) Close() {}

type stubDetector struct {
	boxes []vision.Box
	err   error
}

func (d *stubDetector) Detect(ctx context.Context, frame vision.Frame) ([]vision.Box, error) {
	return d.boxes, d.err
}

type stubRecognizer struct {
	texts [][]string
	err   error
	calls int
}

func (r *stubRecognizer) Recognize(ctx context.Context, region vision.Frame) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.calls >= len(r.texts) {
		return nil, nil
	}
	texts := r.texts[r.calls]
	r.calls++
	return texts, nil
}

func newTestService(t *testing.T, frame *stubFrame, det *stubDetector, rec *stubRecognizer) *plateService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &plateService{
		log:        logger,
		detector:   det,
		recognizer: rec,
		utils:      utils.New(),
		decode: func([]byte) (vision.Frame, error) {
			return frame, nil
		},
		uploadDir: t.TempDir(),
	}
}

func plateBox(conf float64) vision.Box {
	return vision.Box{ClassID: plate.PlateClassID, Confidence: conf, X1: 100, Y1: 100, X2: 180, Y2: 140}
}

func TestExtractPlatesEndToEnd(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9)}}
	rec := &stubRecognizer{texts: [][]string{{"abc 123!"}}}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plates) != 1 || plates[0] != "ABC123" {
		t.Fatalf("plates = %v, want [ABC123]", plates)
	}
}

func TestExtractPlatesRejectsDealerWatermark(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9)}}
	rec := &stubRecognizer{texts: [][]string{{"Grupo Premier MX"}}}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plates) != 0 {
		t.Fatalf("plates = %v, want empty", plates)
	}
}

func TestExtractPlatesConfidenceThresholdIsStrict(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.5)}}
	rec := &stubRecognizer{texts: [][]string{{"ABC123"}}}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plates) != 0 {
		t.Fatalf("box at confidence 0.5 must not reach recognition, got %v", plates)
	}
	if rec.calls != 0 {
		t.Fatalf("recognizer called %d times, want 0", rec.calls)
	}
}

func TestExtractPlatesIgnoresOtherClasses(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{
		{ClassID: 3, Confidence: 0.95, X1: 10, Y1: 10, X2: 90, Y2: 60},
	}}
	rec := &stubRecognizer{texts: [][]string{{"ABC123"}}}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plates) != 0 || rec.calls != 0 {
		t.Fatalf("non-plate class must be skipped, got %v (%d recognizer calls)", plates, rec.calls)
	}
}

func TestExtractPlatesSkipsOutOfBoundsCrop(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{
		{ClassID: plate.PlateClassID, Confidence: 0.9, X1: 700, Y1: 500, X2: 800, Y2: 600},
	}}
	rec := &stubRecognizer{}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("crop outside bounds must not error: %v", err)
	}
	if len(plates) != 0 || rec.calls != 0 {
		t.Fatalf("degenerate crop must contribute no candidates, got %v", plates)
	}
}

func TestExtractPlatesKeepsDuplicates(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9), plateBox(0.8)}}
	rec := &stubRecognizer{texts: [][]string{{"ABC123"}, {"abc-123"}}}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plates) != 2 || plates[0] != "ABC123" || plates[1] != "ABC123" {
		t.Fatalf("plates = %v, want duplicate ABC123 preserved", plates)
	}
}

func TestExtractPlatesDetectorFailureAborts(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{err: errors.New("model crashed")}

	s := newTestService(t, frame, det, &stubRecognizer{})

	_, err := s.ExtractPlates(context.Background(), frame)
	if !errors.Is(err, plate.ErrDetectionFailed) {
		t.Fatalf("err = %v, want ErrDetectionFailed", err)
	}
}

func TestExtractPlatesRecognizerFailureDiscardsPartialResults(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9), plateBox(0.8)}}
	rec := &stubRecognizer{err: errors.New("ocr backend down")}

	s := newTestService(t, frame, det, rec)

	plates, err := s.ExtractPlates(context.Background(), frame)
	if !errors.Is(err, plate.ErrRecognitionFailed) {
		t.Fatalf("err = %v, want ErrRecognitionFailed", err)
	}
	if plates != nil {
		t.Fatalf("partial results must be discarded, got %v", plates)
	}
}

func TestDetectPlateSavesImageOnlyWhenPlateFound(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9)}}
	rec := &stubRecognizer{texts: [][]string{{"abc 123!"}}}

	s := newTestService(t, frame, det, rec)

	resp, err := s.DetectPlate(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || len(resp.Plates) != 1 || resp.Plates[0] != "ABC123" {
		t.Fatalf("resp = %+v, want success with [ABC123]", resp)
	}
	if resp.SavedImage == "" || len(frame.written) != 1 {
		t.Fatalf("image should have been persisted exactly once, got %v", frame.written)
	}
}

func TestDetectPlateNoPlateIsCleanOutcome(t *testing.T) {
	frame := &stubFrame{cols: 640, rows: 480}
	det := &stubDetector{boxes: []vision.Box{plateBox(0.9)}}
	rec := &stubRecognizer{texts: [][]string{{"Grupo Premier MX"}}}

	s := newTestService(t, frame, det, rec)

	resp, err := s.DetectPlate(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("no-plate must not be an error: %v", err)
	}
	if resp.Success || len(resp.Plates) != 0 || resp.Detail == "" {
		t.Fatalf("resp = %+v, want success=false with detail", resp)
	}
	if len(frame.written) != 0 {
		t.Fatalf("image must not be persisted without plates, got %v", frame.written)
	}
}

func TestDetectPlateInvalidImage(t *testing.T) {
	s := newTestService(t, &stubFrame{cols: 640, rows: 480}, &stubDetector{}, &stubRecognizer{})
	s.decode = func([]byte) (vision.Frame, error) {
		return nil, vision.ErrInvalidImage
	}

	_, err := s.DetectPlate(context.Background(), []byte("not an image"))
	if !errors.Is(err, plate.ErrInvalidImage) {
		t.Fatalf("err = %v, want ErrInvalidImage", err)
	}
}
