package game

import (
	"log"
	"math"
)

// ruleGapLogged records (approach, destination) pairs that fell through the
// conflict table, so each configuration gap is reported once. The update
// pass is single-threaded, so a plain map suffices.
var ruleGapLogged = map[[2]int]bool{}

// CanProceed decides whether the ego vehicle may enter or cross the
// junction this tick. Pure with respect to the vehicle set: it reads
// sibling state and mutates nothing.
//
// The conflict table is specific to this T geometry and deliberately not
// generalized: only the three movement pairs that can physically collide
// are checked, everything else is either free or fail-safe blocked.
func CanProceed(ego *Vehicle, all []Vehicle, cfg *Config) bool {
	// A conflict counts only near the junction. The roads are axis-aligned,
	// so closeness on either axis (not Euclidean distance) is the test.
	blockedBy := func(a Approach, d Destination, past func(*Vehicle) bool) bool {
		for i := range all {
			o := &all[i]
			if o.ID == ego.ID || !o.Alive {
				continue
			}
			if math.Abs(o.X-cfg.CenterX) > cfg.JunctionRange &&
				math.Abs(o.Y-cfg.CenterY) > cfg.JunctionRange {
				continue
			}
			if o.Approach == a && o.Destination == d && past(o) {
				return true
			}
		}
		return false
	}

	// Straight through.
	if sd, ok := straightDestination(ego.Approach); ok && sd == ego.Destination {
		switch ego.Approach {
		case ApproachRight:
			return true
		case ApproachLeft:
			// Yields to the bottom→right stream once it is past the
			// center line on its axis.
			return !blockedBy(ApproachBottom, DestRight,
				func(o *Vehicle) bool { return o.Y >= cfg.CenterY })
		}
	}

	switch ego.Destination {
	case DestBottom:
		switch ego.Approach {
		case ApproachLeft:
			return true
		case ApproachRight:
			// Yields to oncoming left→left traffic still on the
			// approach side of center.
			return !blockedBy(ApproachLeft, DestLeft,
				func(o *Vehicle) bool { return o.X <= cfg.CenterX })
		}
	case DestLeft:
		// bottom→left yields to the right→bottom stream past center.
		return !blockedBy(ApproachRight, DestBottom,
			func(o *Vehicle) bool { return o.X >= cfg.CenterX })
	case DestRight:
		return true
	}

	// Fail safe: an uncovered pair stops rather than risking a crossing
	// conflict. Logged once as a configuration gap.
	key := [2]int{int(ego.Approach), int(ego.Destination)}
	if !ruleGapLogged[key] {
		ruleGapLogged[key] = true
		log.Printf("right-of-way: no rule for %s->%s, blocking", ego.Approach, ego.Destination)
	}
	return false
}
