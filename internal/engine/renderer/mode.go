package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how a region is traced.
type Mode int

const (
	// ModeRays traces one ray per pixel.
	ModeRays Mode = iota
	// ModeColumns traces one ray column per image column.
	ModeColumns
	// ModeSlopeColumns traces one jittered slope column per image column.
	ModeSlopeColumns
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown render mode")

func (m Mode) String() string {
	switch m {
	case ModeRays:
		return "rays"
	case ModeColumns:
		return "columns"
	case ModeSlopeColumns:
		return "slope_columns"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rays", "ray":
		return ModeRays, nil
	case "columns", "column":
		return ModeColumns, nil
	case "slope_columns", "slope-columns", "slopes":
		return ModeSlopeColumns, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}
