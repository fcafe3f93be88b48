package meta

import "errors"

var (
	ErrDanglingAssociation = errors.New("association target is not registered")
	ErrRegistrySealed      = errors.New("registry is read-only after link")
	ErrInvalidEntity       = errors.New("invalid entity definition")
	ErrMissingIdentity     = errors.New("entity has no identity attribute")
)
