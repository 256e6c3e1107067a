package tickmath

import (
	"fmt"
	"math"
)

// FeeTier is a pool fee in hundredths of a basis point.
type FeeTier uint32

const (
	FeeTier100   FeeTier = 100
	FeeTier500   FeeTier = 500
	FeeTier3000  FeeTier = 3000
	FeeTier10000 FeeTier = 10000
)

// DefaultTickSpacing is used by TickSpacingOrDefault for unknown fee tiers.
const DefaultTickSpacing = 200

var tickSpacings = map[FeeTier]int{
	FeeTier100:   1,
	FeeTier500:   10,
	FeeTier3000:  60,
	FeeTier10000: 200,
}

// FeeTiers lists the supported fee tiers in ascending order.
func FeeTiers() []FeeTier {
	return []FeeTier{FeeTier100, FeeTier500, FeeTier3000, FeeTier10000}
}

// TickSpacing returns the tick spacing for a fee tier.
func TickSpacing(fee FeeTier) (int, error) {
	spacing, ok := tickSpacings[fee]
	if !ok {
		return 0, fmt.Errorf("fee %d: %w", fee, ErrUnknownFeeTier)
	}
	return spacing, nil
}

// TickSpacingOrDefault is TickSpacing without the error: unknown fee tiers map
// to DefaultTickSpacing.
func TickSpacingOrDefault(fee FeeTier) int {
	if spacing, ok := tickSpacings[fee]; ok {
		return spacing
	}
	return DefaultTickSpacing
}

// SnapTick rounds a tick to the nearest multiple of spacing. Midpoints round
// away from zero.
func SnapTick(tick, spacing int) int {
	if spacing <= 1 {
		return tick
	}
	return int(math.Round(float64(tick)/float64(spacing))) * spacing
}

// FloorTick rounds a tick down to a multiple of spacing.
func FloorTick(tick, spacing int) int {
	if spacing <= 1 {
		return tick
	}
	return int(math.Floor(float64(tick)/float64(spacing))) * spacing
}

// CeilTick rounds a tick up to a multiple of spacing.
func CeilTick(tick, spacing int) int {
	if spacing <= 1 {
		return tick
	}
	return int(math.Ceil(float64(tick)/float64(spacing))) * spacing
}

// NearestValidTick snaps a tick to the grid of the given fee tier.
func NearestValidTick(tick int, fee FeeTier) (int, error) {
	spacing, err := TickSpacing(fee)
	if err != nil {
		return 0, err
	}
	return SnapTick(tick, spacing), nil
}

// UsableTickBounds returns the lowest and highest ticks on the spacing grid
// that stay inside [MinTick, MaxTick].
func UsableTickBounds(spacing int) (int, int) {
	if spacing <= 1 {
		return MinTick, MaxTick
	}
	return CeilTick(MinTick, spacing), FloorTick(MaxTick, spacing)
}

// ClampToGrid snaps a tick and keeps the result inside the usable bounds.
func ClampToGrid(tick, spacing int) int {
	lo, hi := UsableTickBounds(spacing)
	snapped := SnapTick(tick, spacing)
	if snapped < lo {
		return lo
	}
	if snapped > hi {
		return hi
	}
	return snapped
}
