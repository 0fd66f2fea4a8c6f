package incident

import (
	"ProjectPlacas/pkg/response"
	"errors"
	"net/http"
)

var (
	ErrVehicleNotFound = errors.New("no vehicle registered for that plate")
	ErrCreateIncident  = errors.New("failed to create incident")

	ErrBadRequest = response.NewError(http.StatusBadRequest, "invalid incident request")
)
