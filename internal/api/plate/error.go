package plate

import (
	"ProjectPlacas/pkg/response"
	"errors"
	"net/http"
)

var (
	ErrInvalidImage      = errors.New("uploaded image could not be decoded")
	ErrDetectionFailed   = errors.New("plate detection backend failed")
	ErrRecognitionFailed = errors.New("plate recognition backend failed")

	ErrBadRequest = response.NewError(http.StatusBadRequest, "missing image file")
)
