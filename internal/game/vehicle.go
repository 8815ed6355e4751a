package game

import "math"

// Approach names the road branch a vehicle currently occupies. It doubles
// as the key for stop lines and spawn poses, and is reassigned when the
// vehicle turns. The travel sense along the branch lives in DX/DY, not in
// the name: a vehicle spawned on ApproachBottom drives up toward the
// junction, while a vehicle that turned onto ApproachBottom drives down
// toward the bottom exit.
type Approach int

const (
	ApproachLeft Approach = iota
	ApproachRight
	ApproachTop
	ApproachBottom
)

func (a Approach) String() string {
	switch a {
	case ApproachLeft:
		return "left"
	case ApproachRight:
		return "right"
	case ApproachTop:
		return "top"
	case ApproachBottom:
		return "bottom"
	}
	return "unknown"
}

// Destination is the exit branch a vehicle is headed for. Assigned once at
// spawn and immutable afterwards.
type Destination int

const (
	DestLeft Destination = iota
	DestRight
	DestBottom
)

func (d Destination) String() string {
	switch d {
	case DestLeft:
		return "left"
	case DestRight:
		return "right"
	case DestBottom:
		return "bottom"
	}
	return "unknown"
}

// straightDestination maps an approach to the destination that means
// "carry straight on through the junction". The top branch has no exit in
// this T geometry, so it has no straight move.
func straightDestination(a Approach) (Destination, bool) {
	switch a {
	case ApproachLeft:
		return DestLeft, true
	case ApproachRight:
		return DestRight, true
	case ApproachBottom:
		return DestBottom, true
	}
	return 0, false
}

// VehicleState is the junction pass state machine. Every vehicle resolves
// its junction at most once: either it is waved through (Cruising straight
// to Cleared) or it stops once, dwells, and resumes.
type VehicleState int

const (
	StateCruising VehicleState = iota // approaching, stop rule still live
	StateStopped                      // halted at the stop line
	StateResuming                     // dwell served, accelerating from rest
	StateCleared                      // past the decision point, stop rule retired
)

func (s VehicleState) String() string {
	switch s {
	case StateCruising:
		return "cruising"
	case StateStopped:
		return "stopped"
	case StateResuming:
		return "resuming"
	case StateCleared:
		return "cleared"
	}
	return "unknown"
}

// clearDistance stands in for "no stop target": far enough that the
// braking law never engages at any speed in the candidate set.
const clearDistance = 1000.0

type Vehicle struct {
	ID          uint64
	Approach    Approach
	Destination Destination

	X, Y   float64
	DX, DY float64 // heading unit vector, axis-aligned
	Angle  float64 // facing angle in radians, kept in sync with DX/DY

	Speed    float64 // m/s, always in [0, MaxSpeed]
	MaxSpeed float64

	State             VehicleState
	StopTimer         int  // remaining dwell ticks while Stopped
	WaitTicks         int  // ticks spent denied after the dwell was served
	StoppedAtJunction bool // a vehicle registers a stop at most once
	HasTurned         bool // a vehicle turns at most once

	Color RGB
	Alive bool
}

// NewVehicle builds a spawn-ready vehicle. The destination, colour and max
// speed draws come from the world's injected RNG so runs replay exactly
// under a fixed seed.
func NewVehicle(id uint64, a Approach, cfg *Config, r *Rand) Vehicle {
	v := Vehicle{
		ID:       id,
		Approach: a,
		State:    StateCruising,
		Alive:    true,
	}
	v.Destination = randomDestination(a, r)
	v.Color = CarColors[r.Intn(len(CarColors))]
	v.MaxSpeed = cfg.MaxSpeeds[r.Intn(len(cfg.MaxSpeeds))]
	v.Speed = v.MaxSpeed
	v.X, v.Y, v.DX, v.DY = cfg.SpawnPose(a)
	v.Angle = math.Atan2(v.DY, v.DX)
	return v
}

// randomDestination picks from the subset of exits reachable from the
// entry branch: side entries go straight or turn down, vertical entries
// must turn onto the main road.
func randomDestination(a Approach, r *Rand) Destination {
	switch a {
	case ApproachRight:
		return [2]Destination{DestRight, DestBottom}[r.Intn(2)]
	case ApproachLeft:
		return [2]Destination{DestLeft, DestBottom}[r.Intn(2)]
	default: // ApproachTop, ApproachBottom
		return [2]Destination{DestLeft, DestRight}[r.Intn(2)]
	}
}

// Update advances the vehicle by one tick against a snapshot of all live
// vehicles. It only reads sibling state; the world owns the collection and
// all mutation of it.
func (v *Vehicle) Update(cfg *Config, all []Vehicle) {
	if !v.Alive {
		return
	}
	prevX, prevY := v.X, v.Y

	if v.State == StateStopped {
		if v.StopTimer > 0 {
			// The timer gates only the minimum dwell; right-of-way is
			// re-evaluated after it runs out.
			v.StopTimer--
			v.Speed = 0
			return
		}
		if !CanProceed(v, all, cfg) {
			v.Speed = 0
			v.WaitTicks++
			return
		}
		// Kick-start from rest so the acceleration law has a nonzero
		// speed to work with.
		v.State = StateResuming
		v.Speed = math.Min(v.MaxSpeed, cfg.Acceleration/cfg.TickRate)
	}

	target := clearDistance
	if v.State == StateCruising {
		d := v.signedStopDistance(cfg)
		granted := CanProceed(v, all, cfg)
		switch {
		case d < 1 && !granted:
			// Arrived at the line with a live conflict: register the
			// one stop of this vehicle's lifetime.
			v.State = StateStopped
			v.StoppedAtJunction = true
			v.StopTimer = cfg.StopTicks
			v.Speed = 0
			return
		case d < 1:
			// Waved through: the decision point is behind us for good.
			v.State = StateCleared
		case !granted:
			// Conflict ahead: brake toward the stop line.
			target = d
		}
	}

	v.updateSpeed(cfg, target)

	if v.State == StateResuming && v.signedStopDistance(cfg) < 0 {
		v.State = StateCleared
	}

	v.checkTurn(cfg)
	v.updatePosition(cfg)
	v.clampInvariants(prevX, prevY)
}

// signedStopDistance is the distance to this approach's stop line along
// the travel direction: positive before the line, negative past it.
func (v *Vehicle) signedStopDistance(cfg *Config) float64 {
	line := cfg.StopLine(v.Approach)
	if v.DX != 0 {
		return (line - v.X) * v.DX
	}
	return (line - v.Y) * v.DY
}

// updateSpeed applies the braking-distance-aware speed law against the
// current target distance.
//
// The required stopping distance is speed²/(2·maxDecel). Once it meets the
// remaining distance, the deceleration needed to stop exactly at the
// target is speed²/(2·remaining) — applying that (capped at twice the
// nominal limit) yields a profile that halts at the line from any speed
// instead of merely clamping.
func (v *Vehicle) updateSpeed(cfg *Config, dist float64) {
	required := v.Speed * v.Speed / (2 * cfg.MaxDeceleration)

	switch {
	case required >= dist:
		if dist > 0 {
			extra := math.Min(2*cfg.MaxDeceleration, v.Speed*v.Speed/(2*dist))
			v.Speed = math.Max(0, v.Speed-extra/cfg.TickRate)
		} else {
			v.Speed = 0
		}
	case v.Speed < v.MaxSpeed && dist > 1.5*required:
		v.Speed = math.Min(v.MaxSpeed, v.Speed+cfg.Acceleration/cfg.TickRate)
	}
}

// checkTurn fires the one-time turn once the vehicle has advanced far
// enough into the junction for its (approach, destination) pair.
func (v *Vehicle) checkTurn(cfg *Config) {
	if v.HasTurned {
		return
	}
	if sd, ok := straightDestination(v.Approach); ok && sd == v.Destination {
		return
	}

	switch {
	case v.Approach == ApproachRight && v.Destination == DestBottom &&
		v.X >= cfg.CenterX-cfg.LaneWidth/2:
		v.turn(cfg)
	case v.Approach == ApproachLeft && v.Destination == DestBottom &&
		v.X <= cfg.CenterX+cfg.LaneWidth/2:
		v.turn(cfg)
	case v.Approach == ApproachBottom && v.Y <= cfg.CenterY+cfg.LaneWidth/2:
		v.turn(cfg)
	}
}

// turn reassigns approach, heading and facing angle in place, and snaps
// the vehicle laterally onto the centerline of its new lane. Turning
// commits the vehicle through the junction, so the stop rule retires.
func (v *Vehicle) turn(cfg *Config) {
	v.HasTurned = true
	v.State = StateCleared

	switch v.Destination {
	case DestBottom:
		v.Approach = ApproachBottom
		v.DX, v.DY = 0, 1
		v.X = cfg.CenterX - cfg.LaneWidth/2
	case DestLeft:
		v.Approach = ApproachLeft
		v.DX, v.DY = -1, 0
		v.Y = cfg.CenterY - cfg.LaneWidth/2
	case DestRight:
		v.Approach = ApproachRight
		v.DX, v.DY = 1, 0
		v.Y = cfg.CenterY + cfg.LaneWidth/2
	}
	v.Angle = math.Atan2(v.DY, v.DX)
}

func (v *Vehicle) updatePosition(cfg *Config) {
	v.X += v.DX * v.Speed * cfg.PixelsPerMeter / cfg.TickRate
	v.Y += v.DY * v.Speed * cfg.PixelsPerMeter / cfg.TickRate
}

// clampInvariants defends the speed and position invariants against
// numeric breakage: NaN positions roll back to the last valid point,
// speed is pinned into [0, MaxSpeed].
func (v *Vehicle) clampInvariants(prevX, prevY float64) {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) {
		v.X, v.Y = prevX, prevY
	}
	v.Speed = clampF(v.Speed, 0, v.MaxSpeed)
}
