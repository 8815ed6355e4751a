package game

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 800
)

// Sprite buffer cap for the point-sprite pipeline.
const MaxSpriteRender = 4096

// Config is the full static configuration surface of the simulation.
// Built once by DefaultConfig and read-only afterwards; every component
// takes a *Config rather than reaching for globals.
//
// Distances are in world pixels unless a field says otherwise; speeds and
// accelerations are in metres per second, converted at the position update
// through PixelsPerMeter. The tick rate only changes apparent smoothness,
// not real-time behaviour, because all rates are divided by it.
type Config struct {
	// World geometry.
	WorldWidth     float64
	WorldHeight    float64
	RoadLength     float64 // metres spanned by the world width
	PixelsPerMeter float64
	TickRate       float64 // simulation steps per second

	RoadWidth       float64
	LaneWidth       float64
	CenterX         float64
	CenterY         float64
	CarWidth        float64 // car length along its heading
	CarHeight       float64 // car width across its heading
	StopLineSetback float64 // gap between road edge and stop line

	// Vehicle physics.
	Acceleration    float64 // m/s²
	MaxDeceleration float64 // m/s²
	StopTicks       int     // minimum dwell at the stop line
	MinGap          float64 // minimum following gap, px
	HornDelayTicks  int     // denied ticks after the dwell before the horn event

	// Junction arbitration.
	JunctionRange float64 // axis distance from center that counts as "near", px

	// Spawn policy.
	SpawnClearance   float64 // required clear distance from the spawn edge, px
	SpawnProbability float64 // per-approach Bernoulli draw each tick
	MaxPerApproach   int
	MaxSpeeds        []float64 // candidate max speeds, m/s
	SpawnApproaches  []Approach
}

// DefaultConfig mirrors the real-world scale of the junction: an 800 px
// world spanning 500 m of road, stepped at 30 Hz.
func DefaultConfig() Config {
	const (
		worldW  = 800.0
		worldH  = 800.0
		roadLen = 500.0
	)
	ppm := worldW / roadLen
	return Config{
		WorldWidth:     worldW,
		WorldHeight:    worldH,
		RoadLength:     roadLen,
		PixelsPerMeter: ppm,
		TickRate:       30,

		RoadWidth:       100,
		LaneWidth:       50,
		CenterX:         worldW / 2,
		CenterY:         worldH / 2,
		CarWidth:        25,
		CarHeight:       15,
		StopLineSetback: 20,

		Acceleration:    2,
		MaxDeceleration: 2,
		StopTicks:       60, // 2 s at 30 Hz
		MinGap:          5 * ppm,
		HornDelayTicks:  90,

		JunctionRange: 50 * ppm,

		SpawnClearance:   50 * ppm,
		SpawnProbability: 0.05,
		MaxPerApproach:   2,
		MaxSpeeds:        []float64{20},
		SpawnApproaches:  []Approach{ApproachRight, ApproachLeft},
	}
}

// StopLine returns the stop-line coordinate for an approach: the x
// coordinate for horizontal travel, the y coordinate for vertical travel.
func (c *Config) StopLine(a Approach) float64 {
	switch a {
	case ApproachRight:
		return c.CenterX - c.RoadWidth/2 - c.StopLineSetback
	case ApproachLeft:
		return c.CenterX + c.RoadWidth/2 + c.StopLineSetback
	case ApproachBottom:
		return c.CenterY - c.RoadWidth/2 - c.StopLineSetback
	default: // ApproachTop
		return c.CenterY + c.RoadWidth/2 + c.StopLineSetback
	}
}

// SpawnPose returns the initial position and heading unit vector for a
// vehicle entering on the given approach, placed in the correct lane just
// outside the visible world.
func (c *Config) SpawnPose(a Approach) (x, y, dx, dy float64) {
	switch a {
	case ApproachRight:
		// Entering from the left edge, rightward lane is the lower one.
		return -c.CarWidth, c.CenterY + c.LaneWidth/2, 1, 0
	case ApproachLeft:
		// Entering from the right edge, leftward lane is the upper one.
		return c.WorldWidth + c.CarWidth, c.CenterY - c.LaneWidth/2, -1, 0
	case ApproachBottom:
		// Entering from the bottom edge, upward lane is the left one.
		return c.CenterX - c.LaneWidth/2, c.WorldHeight + c.CarHeight, 0, -1
	default: // ApproachTop
		return c.CenterX + c.LaneWidth/2, -c.CarHeight, 0, 1
	}
}
