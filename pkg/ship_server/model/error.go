package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidParameter = errors.New("") // Base error for invalid parameter
var ErrDataNotFound = errors.New("")     // Base error for data not found
var ErrPrecondition = errors.New("")     // Base error for a missing prerequisite (e.g. no settings yet)

var ErrDuplicateCarton = fmt.Errorf("duplicate cartons scanned%w", ErrInvalidParameter)
var ErrSettingsNotFound = fmt.Errorf("ship-from settings have not been configured%w", ErrPrecondition)
var ErrShipmentNotFound = fmt.Errorf("shipment not found%w", ErrDataNotFound)
var ErrLabelNotCreated = fmt.Errorf("label not created%w", ErrDataNotFound)

func ErrToHttpStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, ErrDataNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPrecondition):
		return http.StatusPreconditionFailed
	}

	return http.StatusInternalServerError
}
