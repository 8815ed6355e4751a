package game

import (
	"math"
	"testing"
)

func TestDeterministicReplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0.5

	a := NewTrafficWorld(cfg, 42)
	b := NewTrafficWorld(cfg, 42)

	for tick := 0; tick < 400; tick++ {
		a.Step()
		b.Step()
		if len(a.Vehicles) != len(b.Vehicles) {
			t.Fatalf("tick %d: vehicle counts diverge (%d vs %d)", tick, len(a.Vehicles), len(b.Vehicles))
		}
		for i := range a.Vehicles {
			va, vb := &a.Vehicles[i], &b.Vehicles[i]
			if va.ID != vb.ID || va.X != vb.X || va.Y != vb.Y ||
				va.Speed != vb.Speed || va.State != vb.State {
				t.Fatalf("tick %d: vehicle %d diverged: (%d %.4f %.4f %.4f %v) vs (%d %.4f %.4f %.4f %v)",
					tick, i, va.ID, va.X, va.Y, va.Speed, va.State,
					vb.ID, vb.X, vb.Y, vb.Speed, vb.State)
			}
		}
	}
}

func TestSpawnCapPerApproach(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 1.0

	w := NewTrafficWorld(cfg, 7)
	for tick := 0; tick < 600; tick++ {
		w.Step()
		for _, a := range cfg.SpawnApproaches {
			if n := w.countOnApproach(a); n > cfg.MaxPerApproach {
				t.Fatalf("tick %d: %d vehicles on %v, cap %d", tick, n, a, cfg.MaxPerApproach)
			}
		}
	}
}

func TestSpawnClearance(t *testing.T) {
	cfg := DefaultConfig()
	w := NewTrafficWorld(cfg, 1)

	v := testVehicle(1, ApproachRight, DestRight, &cfg)
	w.Vehicles = append(w.Vehicles, v)
	if w.canSpawn(ApproachRight) {
		t.Fatal("spawn allowed with a vehicle sitting on the entry point")
	}

	w.Vehicles[0].X = -cfg.CarWidth + cfg.SpawnClearance + 1
	if !w.canSpawn(ApproachRight) {
		t.Fatal("spawn denied with the entry zone clear")
	}

	// The other approach is unaffected.
	if !w.canSpawn(ApproachLeft) {
		t.Fatal("clearance check leaked across approaches")
	}
}

func TestVehicleIDsMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 1.0

	w := NewTrafficWorld(cfg, 3)
	seen := map[uint64]bool{}
	var last uint64
	w.Events.Subscribe(EventVehicleSpawned, func(e Event) {
		if e.ID <= last {
			t.Fatalf("spawn id %d not increasing (last %d)", e.ID, last)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		last = e.ID
	})

	for tick := 0; tick < 2000; tick++ {
		w.Step()
	}
	if len(seen) < 4 {
		t.Fatalf("only %d spawns in 2000 ticks", len(seen))
	}
	if _, ok := seen[1]; !ok {
		t.Fatal("ids do not start at 1")
	}
}

func TestExitRemoval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0

	w := NewTrafficWorld(cfg, 1)
	v := testVehicle(9, ApproachRight, DestRight, &cfg)
	v.X = cfg.WorldWidth + 2*cfg.CarWidth - 0.5
	v.State = StateCleared
	w.Vehicles = append(w.Vehicles, v)

	var exited []uint64
	w.Events.Subscribe(EventVehicleExited, func(e Event) { exited = append(exited, e.ID) })

	for tick := 0; tick < 10 && len(w.Vehicles) > 0; tick++ {
		w.Step()
	}
	if len(w.Vehicles) != 0 {
		t.Fatalf("vehicle not removed, x=%.1f", w.Vehicles[0].X)
	}
	if len(exited) != 1 || exited[0] != 9 {
		t.Fatalf("exit events %v, want [9]", exited)
	}
}

func TestRemovalPreservesOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0
	w := NewTrafficWorld(cfg, 1)

	for i, x := range []float64{100, -200, 300, -200, 500} {
		v := testVehicle(uint64(i+1), ApproachRight, DestRight, &cfg)
		v.X = x
		v.State = StateCleared
		w.Vehicles = append(w.Vehicles, v)
	}
	w.removeExited()

	want := []uint64{1, 3, 5}
	if len(w.Vehicles) != len(want) {
		t.Fatalf("kept %d vehicles, want %d", len(w.Vehicles), len(want))
	}
	for i, id := range want {
		if w.Vehicles[i].ID != id {
			t.Fatalf("slot %d: id %d, want %d", i, w.Vehicles[i].ID, id)
		}
	}
}

func TestStopResumeBlockedEventSequence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0

	// The blocker sits past center but outside the bottom-approach turn
	// window, so world updates leave it on its approach.
	w := NewTrafficWorld(cfg, 1)
	w.Vehicles = append(w.Vehicles,
		testVehicle(1, ApproachLeft, DestLeft, &cfg),
		staticBlocker(2, ApproachBottom, DestRight, cfg.CenterX, cfg.CenterY+30))

	var order []EventType
	for _, et := range []EventType{EventVehicleStopped, EventVehicleBlocked, EventVehicleResumed, EventVehicleExited} {
		et := et
		w.Events.Subscribe(et, func(e Event) {
			if e.ID == 1 {
				order = append(order, et)
			}
		})
	}

	// Run until the horn fires, then clear the conflict and run to exit.
	for tick := 0; tick < 8000 && len(order) < 2; tick++ {
		w.Step()
	}
	if len(order) < 2 {
		t.Fatalf("vehicle never stopped against the blocker, events %v", order)
	}
	blocker := -1
	for i := range w.Vehicles {
		if w.Vehicles[i].ID == 2 {
			blocker = i
		}
	}
	if blocker < 0 {
		t.Fatal("blocker left the world")
	}
	w.Vehicles[blocker].X = 100
	w.Vehicles[blocker].Y = 100
	for tick := 0; tick < 8000 && len(order) < 4; tick++ {
		w.Step()
	}

	want := []EventType{EventVehicleStopped, EventVehicleBlocked, EventVehicleResumed, EventVehicleExited}
	if len(order) != len(want) {
		t.Fatalf("event order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("event order %v, want %v", order, want)
		}
	}
}

func TestParkedVehicleHoldsApproachUnderStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0

	// Parked inside the bottom-approach turn window: repeated world
	// updates must not reassign its approach or move it, or it would
	// silently stop matching the conflict rules keyed on it.
	w := NewTrafficWorld(cfg, 1)
	w.Vehicles = append(w.Vehicles,
		staticBlocker(2, ApproachBottom, DestRight, cfg.CenterX, cfg.CenterY+20))

	for tick := 0; tick < 100; tick++ {
		w.Step()
	}
	if len(w.Vehicles) != 1 {
		t.Fatalf("parked vehicle removed, %d vehicles left", len(w.Vehicles))
	}
	v := &w.Vehicles[0]
	if v.Approach != ApproachBottom || v.Destination != DestRight {
		t.Fatalf("parked vehicle re-routed to %v->%v", v.Approach, v.Destination)
	}
	if v.X != cfg.CenterX || v.Y != cfg.CenterY+20 {
		t.Fatalf("parked vehicle moved to (%.1f, %.1f)", v.X, v.Y)
	}
}

func TestLongRunInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnProbability = 0.3
	cfg.SpawnApproaches = []Approach{ApproachRight, ApproachLeft, ApproachBottom}

	w := NewTrafficWorld(cfg, 42)
	for tick := 0; tick < 3000; tick++ {
		w.Step()
		for i := range w.Vehicles {
			v := &w.Vehicles[i]
			if v.Speed < 0 || v.Speed > v.MaxSpeed {
				t.Fatalf("tick %d: vehicle %d speed %.4f out of [0, %.1f]", tick, v.ID, v.Speed, v.MaxSpeed)
			}
			if math.IsNaN(v.X) || math.IsNaN(v.Y) {
				t.Fatalf("tick %d: vehicle %d has NaN position", tick, v.ID)
			}
			if v.State == StateStopped && !v.StoppedAtJunction {
				t.Fatalf("tick %d: vehicle %d stopped without registering the stop", tick, v.ID)
			}
		}
	}
}
