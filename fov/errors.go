package fov

import "errors"

var (
	ErrNegativeRadius    = errors.New("fov: negative radius")
	ErrInvalidWidth      = errors.New("fov: grid width must be positive")
	ErrRaggedGrid        = errors.New("fov: grid length is not a multiple of width")
	ErrOriginOutOfBounds = errors.New("fov: origin outside grid")
	ErrNilBlocker        = errors.New("fov: nil blocker")
)
