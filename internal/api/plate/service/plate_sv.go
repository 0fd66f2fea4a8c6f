package plateService

import (
	"ProjectPlacas/internal/api/plate"
	contextPkg "ProjectPlacas/pkg/context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"ProjectPlacas/pkg/vision"
)

// DetectPlate decodes an uploaded image, runs the extraction pipeline and,
// only when at least one plate was read, persists the source image under
// the upload directory.
func (s *plateService) DetectPlate(ctx context.Context, imageBytes []byte) (*plate.DetectPlateResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	frame, err := s.decode(imageBytes)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Uploaded image could not be decoded")
		return nil, plate.ErrInvalidImage
	}
	defer frame.Close()

	plates, err := s.ExtractPlates(ctx, frame)
	if err != nil {
		return nil, err
	}

	if len(plates) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Info("No plate detected in uploaded image")
		return &plate.DetectPlateResponse{
			Success: false,
			Plates:  []string{},
			Detail:  "no plate detected",
		}, nil
	}

	savedImage, err := s.saveImage(frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to persist source image")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"plates":     plates,
		"image":      savedImage,
	}).Info("Plate detection successful")

	return &plate.DetectPlateResponse{
		Success:    true,
		Plates:     plates,
		SavedImage: savedImage,
	}, nil
}

// ExtractPlates runs detect -> crop -> recognize -> normalize -> validate
// over every candidate region. Order is preserved and duplicate reads are
// kept; deduplication is a caller decision. Any adapter failure aborts the
// whole call and partial results are discarded.
func (s *plateService) ExtractPlates(ctx context.Context, frame vision.Frame) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	boxes, err := s.detector.Detect(ctx, frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Detector backend failed")
		return nil, fmt.Errorf("%w: %s", plate.ErrDetectionFailed, err)
	}

	results := []string{}

	for _, box := range boxes {
		if box.ClassID != plate.PlateClassID {
			continue
		}
		if box.Confidence <= plate.MinConfidence {
			continue
		}

		rect, ok := vision.ExpandAndClamp(box, plate.CropMargin, frame.Cols(), frame.Rows())
		if !ok {
			continue
		}

		region := frame.Region(rect)
		texts, err := s.recognizer.Recognize(ctx, region)
		region.Close()
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Recognizer backend failed")
			return nil, fmt.Errorf("%w: %s", plate.ErrRecognitionFailed, err)
		}

		for _, raw := range texts {
			candidate := plate.Normalize(raw)
			if plate.IsValid(candidate) {
				results = append(results, candidate)
			}
		}
	}

	return results, nil
}

func (s *plateService) saveImage(frame vision.Frame) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	name, err := s.utils.UniqueImageName(time.Now())
	if err != nil {
		return "", err
	}

	if err := frame.WriteFile(filepath.Join(s.uploadDir, name)); err != nil {
		return "", err
	}

	return name, nil
}
