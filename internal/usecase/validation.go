package usecase

import (
	"fmt"
	"time"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// ValidatePoint checks a coordinate pair for WGS84 bounds.
func ValidatePoint(p model.Point) error {
	if !p.Valid() {
		return fmt.Errorf("%w: location out of bounds", domainErrors.ErrValidation)
	}
	return nil
}

// ValidateWindow checks that a placement window is ordered and non-empty.
func ValidateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: time window required", domainErrors.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: window must end after it starts", domainErrors.ErrValidation)
	}
	return nil
}
