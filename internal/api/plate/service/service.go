package plateService

import (
	"ProjectPlacas/internal/api/plate"
	"ProjectPlacas/pkg/utils"
	"ProjectPlacas/pkg/vision"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPlateService interface {
	DetectPlate(ctx context.Context, imageBytes []byte) (*plate.DetectPlateResponse, error)
	ExtractPlates(ctx context.Context, frame vision.Frame) ([]string, error)
}

type plateService struct {
	log        *logrus.Logger
	detector   vision.Detector
	recognizer vision.Recognizer
	utils      utils.IUtils
	decode     func([]byte) (vision.Frame, error)
	uploadDir  string
}

func NewPlateService(
	log *logrus.Logger,
	detector vision.Detector,
	recognizer vision.Recognizer,
	utils utils.IUtils,
) IPlateService {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return &plateService{
		log:        log,
		detector:   detector,
		recognizer: recognizer,
		utils:      utils,
		decode:     vision.Decode,
		uploadDir:  uploadDir,
	}
}
