package vehicle

import "errors"

var (
	ErrPlateInvalid           = errors.New("plate does not match the expected format")
	ErrPlateAlreadyRegistered = errors.New("plate already registered")
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrOwnerNotFound          = errors.New("owner user not found")
)
