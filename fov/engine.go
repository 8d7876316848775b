package fov

import (
	"fmt"
	"strings"
)

// Engine selects a shadowcasting strategy.
type Engine uint8

const (
	EngineDense  Engine = iota // symmetric row scan, Manhattan cutoff
	EngineSparse               // recursive octant scan, Euclidean cutoff
	engineCount                // sentinel
)

// Engines lists every engine in display order.
func Engines() []Engine {
	return []Engine{EngineDense, EngineSparse}
}

func (e Engine) String() string {
	switch e {
	case EngineDense:
		return "dense"
	case EngineSparse:
		return "sparse"
	default:
		return fmt.Sprintf("engine(%d)", uint8(e))
	}
}

// Next cycles to the following engine.
func (e Engine) Next() Engine {
	return (e + 1) % engineCount
}

// ParseEngine accepts "dense" or "sparse", case-insensitive.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dense", "symmetric":
		return EngineDense, nil
	case "sparse", "recursive":
		return EngineSparse, nil
	default:
		return 0, fmt.Errorf("unknown fov engine %q (want dense or sparse)", s)
	}
}

// UnmarshalText lets engines be decoded straight from config files.
func (e *Engine) UnmarshalText(text []byte) error {
	v, err := ParseEngine(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (e Engine) MarshalText() ([]byte, error) {
	if e >= engineCount {
		return nil, fmt.Errorf("invalid fov engine %d", uint8(e))
	}
	return []byte(e.String()), nil
}
