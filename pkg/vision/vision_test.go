package vision

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/context"
)

func TestExpandAndClamp(t *testing.T) {
	tests := []struct {
		name   string
		box    Box
		margin int
		cols   int
		rows   int
		want   image.Rectangle
		wantOK bool
	}{
		{
			name:   "interior box grows by margin",
			box:    Box{X1: 100, Y1: 100, X2: 180, Y2: 140},
			margin: 15,
			cols:   640, rows: 480,
			want:   image.Rect(85, 85, 195, 155),
			wantOK: true,
		},
		{
			name:   "clamped at origin",
			box:    Box{X1: 5, Y1: 5, X2: 60, Y2: 40},
			margin: 15,
			cols:   640, rows: 480,
			want:   image.Rect(0, 0, 75, 55),
			wantOK: true,
		},
		{
			name:   "clamped at far edge",
			box:    Box{X1: 600, Y1: 450, X2: 635, Y2: 475},
			margin: 15,
			cols:   640, rows: 480,
			want:   image.Rect(585, 435, 640, 480),
			wantOK: true,
		},
		{
			name:   "box entirely outside bounds collapses",
			box:    Box{X1: 700, Y1: 500, X2: 800, Y2: 600},
			margin: 15,
			cols:   640, rows: 480,
			wantOK: false,
		},
		{
			name:   "negative coordinates collapse",
			box:    Box{X1: -200, Y1: -100, X2: -120, Y2: -40},
			margin: 15,
			cols:   640, rows: 480,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExpandAndClamp(tt.box, tt.margin, tt.cols, tt.rows)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("rect = %v, want %v", got, tt.want)
			}
		})
	}
}

type slowDetector struct {
	delay    time.Duration
	boxes    []Box
	err      error
	got      Frame
	finished chan struct{}
}

func (d *slowDetector) Detect(ctx context.Context, frame Frame) ([]Box, error) {
	d.got = frame
	time.Sleep(d.delay)
	if d.finished != nil {
		close(d.finished)
	}
	return d.boxes, d.err
}

type slowRecognizer struct {
	delay    time.Duration
	texts    []string
	got      Frame
	finished chan struct{}
}

func (r *slowRecognizer) Recognize(ctx context.Context, region Frame) ([]string, error) {
	r.got = region
	time.Sleep(r.delay)
	if r.finished != nil {
		close(r.finished)
	}
	return r.texts, nil
}

// fakeFrame tracks cloning and closing so frame ownership across the
// timeout boundary can be asserted.
type fakeFrame struct {
	mu     sync.Mutex
	closed bool
	clone  *fakeFrame
}

func (f *fakeFrame) Cols() int                    { return 640 }
func (f *fakeFrame) Rows() int                    { return 480 }
func (f *fakeFrame) Empty() bool                  { return false }
func (f *fakeFrame) Region(image.Rectangle) Frame { return f }
func (f *fakeFrame) WriteFile(string) error       { return nil }

func (f *fakeFrame) Clone() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clone = &fakeFrame{}
	return f.clone
}

func (f *fakeFrame) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeFrame) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeFrame) cloneRef() *fakeFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clone
}

func waitForClose(t *testing.T, f *fakeFrame) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !f.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("frame was never closed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTimeoutDetectorReturnsResultWithinBudget(t *testing.T) {
	inner := &slowDetector{boxes: []Box{{ClassID: 0, Confidence: 0.9}}}
	d := NewTimeoutDetector(inner, time.Second)

	boxes, err := d.Detect(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
}

func TestTimeoutDetectorTimesOut(t *testing.T) {
	inner := &slowDetector{delay: 200 * time.Millisecond}
	d := NewTimeoutDetector(inner, 20*time.Millisecond)

	_, err := d.Detect(context.Background(), nil)
	if !errors.Is(err, ErrInferenceTimeout) {
		t.Fatalf("err = %v, want ErrInferenceTimeout", err)
	}
}

func TestTimeoutDetectorPropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	d := NewTimeoutDetector(&slowDetector{err: wantErr}, time.Second)

	_, err := d.Detect(context.Background(), nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestTimeoutRecognizerTimesOut(t *testing.T) {
	inner := &slowRecognizer{delay: 200 * time.Millisecond, texts: []string{"ABC123"}}
	r := NewTimeoutRecognizer(inner, 20*time.Millisecond)

	_, err := r.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrInferenceTimeout) {
		t.Fatalf("err = %v, want ErrInferenceTimeout", err)
	}
}

func TestTimeoutDetectorAbandonedInferenceOwnsItsFrame(t *testing.T) {
	frame := &fakeFrame{}
	inner := &slowDetector{delay: 100 * time.Millisecond, finished: make(chan struct{})}
	d := NewTimeoutDetector(inner, 10*time.Millisecond)

	_, err := d.Detect(context.Background(), frame)
	if !errors.Is(err, ErrInferenceTimeout) {
		t.Fatalf("err = %v, want ErrInferenceTimeout", err)
	}

	// the caller is free to release its frame right away
	frame.Close()

	<-inner.finished
	if inner.got == Frame(frame) {
		t.Fatal("inner detector must receive a clone, not the caller's frame")
	}

	clone := frame.cloneRef()
	if clone == nil {
		t.Fatal("expected the decorator to clone the frame")
	}
	waitForClose(t, clone)
}

func TestTimeoutRecognizerAbandonedInferenceOwnsItsFrame(t *testing.T) {
	region := &fakeFrame{}
	inner := &slowRecognizer{delay: 100 * time.Millisecond, texts: []string{"ABC123"}, finished: make(chan struct{})}
	r := NewTimeoutRecognizer(inner, 10*time.Millisecond)

	_, err := r.Recognize(context.Background(), region)
	if !errors.Is(err, ErrInferenceTimeout) {
		t.Fatalf("err = %v, want ErrInferenceTimeout", err)
	}

	region.Close()

	<-inner.finished
	if inner.got == Frame(region) {
		t.Fatal("inner recognizer must receive a clone, not the caller's region")
	}

	clone := region.cloneRef()
	if clone == nil {
		t.Fatal("expected the decorator to clone the region")
	}
	waitForClose(t, clone)
}

func TestTimeoutRecognizerHonorsContextCancellation(t *testing.T) {
	inner := &slowRecognizer{delay: 200 * time.Millisecond}
	r := NewTimeoutRecognizer(inner, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Recognize(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
