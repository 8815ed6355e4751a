package game

// TrafficWorld owns the vehicle collection, the spawn policy and the tick
// loop. All mutation of the collection happens here; vehicles only read
// sibling state during their own update.
type TrafficWorld struct {
	Cfg      Config
	Vehicles []Vehicle
	Events   *EventBus
	Tick     uint64

	rng    *Rand
	nextID uint64
}

// NewTrafficWorld builds an empty world stepped by the given seed. The
// same seed and config always replay the same run tick for tick.
func NewTrafficWorld(cfg Config, seed uint64) *TrafficWorld {
	return &TrafficWorld{
		Cfg:    cfg,
		Events: NewEventBus(),
		rng:    NewRand(seed),
	}
}

// Step advances the world one tick: spawn pass first, then one in-place
// update per vehicle, then removal of exited vehicles.
//
// Updates run sequentially over the slice, so a later vehicle observes
// earlier vehicles at their already-advanced positions for this tick. The
// order is stable (spawn order, compacted in place), which keeps runs
// deterministic.
func (w *TrafficWorld) Step() {
	w.Tick++
	w.spawnVehicles()

	for i := range w.Vehicles {
		v := &w.Vehicles[i]
		prevState := v.State
		prevWait := v.WaitTicks

		v.Update(&w.Cfg, w.Vehicles)

		if prevState != StateStopped && v.State == StateStopped {
			w.Events.Emit(Event{Type: EventVehicleStopped, ID: v.ID, X: v.X, Y: v.Y})
		}
		if prevState == StateStopped && v.State == StateResuming {
			w.Events.Emit(Event{Type: EventVehicleResumed, ID: v.ID, X: v.X, Y: v.Y})
		}
		if prevWait < w.Cfg.HornDelayTicks && v.WaitTicks >= w.Cfg.HornDelayTicks {
			w.Events.Emit(Event{Type: EventVehicleBlocked, ID: v.ID, X: v.X, Y: v.Y})
		}
	}

	w.removeExited()
}

// LiveCount reports the number of vehicles currently in the world.
func (w *TrafficWorld) LiveCount() int {
	n := 0
	for i := range w.Vehicles {
		if w.Vehicles[i].Alive {
			n++
		}
	}
	return n
}

func (w *TrafficWorld) allocID() uint64 {
	w.nextID++
	return w.nextID
}

// spawnVehicles runs one Bernoulli spawn attempt per configured approach.
// The cap check and clearance check both precede the random draw, so the
// RNG stream only advances when a spawn is actually possible.
func (w *TrafficWorld) spawnVehicles() {
	for _, a := range w.Cfg.SpawnApproaches {
		if w.countOnApproach(a) >= w.Cfg.MaxPerApproach {
			continue
		}
		if !w.canSpawn(a) {
			continue
		}
		if w.rng.Float64() >= w.Cfg.SpawnProbability {
			continue
		}
		v := NewVehicle(w.allocID(), a, &w.Cfg, w.rng)
		w.Vehicles = append(w.Vehicles, v)
		w.Events.Emit(Event{Type: EventVehicleSpawned, ID: v.ID, X: v.X, Y: v.Y})
	}
}

func (w *TrafficWorld) countOnApproach(a Approach) int {
	n := 0
	for i := range w.Vehicles {
		if w.Vehicles[i].Alive && w.Vehicles[i].Approach == a {
			n++
		}
	}
	return n
}

// canSpawn reports whether the entry zone of an approach is clear: every
// live vehicle on the same approach must be at least SpawnClearance past
// the spawn point.
func (w *TrafficWorld) canSpawn(a Approach) bool {
	cfg := &w.Cfg
	for i := range w.Vehicles {
		o := &w.Vehicles[i]
		if !o.Alive || o.Approach != a {
			continue
		}
		switch a {
		case ApproachRight:
			if o.X <= -cfg.CarWidth+cfg.SpawnClearance {
				return false
			}
		case ApproachLeft:
			if o.X >= cfg.WorldWidth+cfg.CarWidth-cfg.SpawnClearance {
				return false
			}
		case ApproachTop:
			if o.Y <= -cfg.CarHeight+cfg.SpawnClearance {
				return false
			}
		case ApproachBottom:
			if o.Y >= cfg.WorldHeight+cfg.CarHeight-cfg.SpawnClearance {
				return false
			}
		}
	}
	return true
}

// removeExited drops vehicles that have left the world through any edge,
// with a margin so cars vanish fully off screen. Compaction preserves the
// remaining order, which the sequential update pass relies on.
func (w *TrafficWorld) removeExited() {
	cfg := &w.Cfg
	margin := 2 * cfg.CarWidth
	kept := w.Vehicles[:0]
	for i := range w.Vehicles {
		v := w.Vehicles[i]
		if v.Alive &&
			v.X >= -margin && v.X <= cfg.WorldWidth+margin &&
			v.Y >= -margin && v.Y <= cfg.WorldHeight+margin {
			kept = append(kept, v)
			continue
		}
		w.Events.Emit(Event{Type: EventVehicleExited, ID: v.ID, X: v.X, Y: v.Y})
	}
	w.Vehicles = kept
}
