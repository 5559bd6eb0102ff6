package types

import "errors"

// Component scaffold kinds.
const (
	KindFunctional = "functional"
	KindPage       = "page"
)

// ErrInvalidComponentName is returned when a scaffold name is not an
// identifier starting with an uppercase letter.
var ErrInvalidComponentName = errors.New("invalid component name")
