package vision

import (
	"errors"
	"os"
	"time"

	"golang.org/x/net/context"
)

var ErrInferenceTimeout = errors.New("inference timed out")

const defaultInferenceTimeout = 10 * time.Second

// InferenceTimeout reads VISION_TIMEOUT (a Go duration) falling back to
// the default when unset or unparsable.
func InferenceTimeout() time.Duration {
	if v := os.Getenv("VISION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultInferenceTimeout
}

type timeoutDetector struct {
	inner   Detector
	timeout time.Duration
}

type timeoutRecognizer struct {
	inner   Recognizer
	timeout time.Duration
}

// NewTimeoutDetector bounds every Detect call. OpenCV inference cannot be
// interrupted mid-forward, so on timeout the call returns while the
// inference goroutine finishes in the background and its result is
// dropped. The goroutine works on its own clone of the frame and closes
// it when done, so the caller may close its frame as soon as the
// decorator returns.
func NewTimeoutDetector(inner Detector, timeout time.Duration) Detector {
	return &timeoutDetector{inner: inner, timeout: timeout}
}

func NewTimeoutRecognizer(inner Recognizer, timeout time.Duration) Recognizer {
	return &timeoutRecognizer{inner: inner, timeout: timeout}
}

func (d *timeoutDetector) Detect(ctx context.Context, frame Frame) ([]Box, error) {
	type result struct {
		boxes []Box
		err   error
	}

	var owned Frame
	if frame != nil {
		owned = frame.Clone()
	}

	done := make(chan result, 1)
	go func() {
		boxes, err := d.inner.Detect(ctx, owned)
		if owned != nil {
			owned.Close()
		}
		done <- result{boxes: boxes, err: err}
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.boxes, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrInferenceTimeout
	}
}

func (r *timeoutRecognizer) Recognize(ctx context.Context, region Frame) ([]string, error) {
	type result struct {
		texts []string
		err   error
	}

	var owned Frame
	if region != nil {
		owned = region.Clone()
	}

	done := make(chan result, 1)
	go func() {
		texts, err := r.inner.Recognize(ctx, owned)
		if owned != nil {
			owned.Close()
		}
		done <- result{texts: texts, err: err}
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.texts, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrInferenceTimeout
	}
}
