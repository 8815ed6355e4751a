package game

import "testing"

func TestRightOfWayTable(t *testing.T) {
	cfg := DefaultConfig()
	cx, cy := cfg.CenterX, cfg.CenterY

	cases := []struct {
		name  string
		egoA  Approach
		egoD  Destination
		other *Vehicle
		want  bool
	}{
		{"right straight is free", ApproachRight, DestRight,
			ptr(staticBlocker(2, ApproachBottom, DestRight, cx, cy+20)), true},

		{"left straight blocked by crossing turner past center", ApproachLeft, DestLeft,
			ptr(staticBlocker(2, ApproachBottom, DestRight, cx, cy+20)), false},
		{"left straight free while turner short of center", ApproachLeft, DestLeft,
			ptr(staticBlocker(2, ApproachBottom, DestRight, cx, cy-20)), true},
		{"left straight free when turner far from junction", ApproachLeft, DestLeft,
			ptr(staticBlocker(2, ApproachBottom, DestRight, 100, 100)), true},

		{"left turn down is free", ApproachLeft, DestBottom,
			ptr(staticBlocker(2, ApproachRight, DestRight, cx-30, cy+25)), true},

		{"right turn down blocked by oncoming straight", ApproachRight, DestBottom,
			ptr(staticBlocker(2, ApproachLeft, DestLeft, cx-30, cy-25)), false},
		{"right turn down free once oncoming is past center", ApproachRight, DestBottom,
			ptr(staticBlocker(2, ApproachLeft, DestLeft, cx+30, cy-25)), true},

		{"up turn left blocked by downward turner past center", ApproachBottom, DestLeft,
			ptr(staticBlocker(2, ApproachRight, DestBottom, cx+10, cy)), false},
		{"up turn left free while turner short of center", ApproachBottom, DestLeft,
			ptr(staticBlocker(2, ApproachRight, DestBottom, cx-30, cy+25)), true},

		{"up turn right is free", ApproachBottom, DestRight,
			ptr(staticBlocker(2, ApproachRight, DestBottom, cx+10, cy)), true},

		{"uncovered pair fails safe", ApproachTop, DestBottom, nil, false},

		{"dead vehicle ignored", ApproachLeft, DestLeft,
			deadAt(cx, cy+20), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ego := testVehicle(1, tc.egoA, tc.egoD, &cfg)
			all := []Vehicle{ego}
			if tc.other != nil {
				all = append(all, *tc.other)
			}
			if got := CanProceed(&all[0], all, &cfg); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func ptr(v Vehicle) *Vehicle { return &v }

func deadAt(x, y float64) *Vehicle {
	v := staticBlocker(2, ApproachBottom, DestRight, x, y)
	v.Alive = false
	return &v
}

func TestRightOfWayIgnoresSelf(t *testing.T) {
	cfg := DefaultConfig()
	ego := testVehicle(1, ApproachLeft, DestLeft, &cfg)
	// A vehicle never conflicts with its own record even when the shape
	// of that record would match a blocking rule.
	ego.Approach = ApproachBottom
	ego.Destination = DestRight
	ego.X = cfg.CenterX
	ego.Y = cfg.CenterY + 20
	all := []Vehicle{ego}
	probe := all[0]
	probe.Approach = ApproachLeft
	probe.Destination = DestLeft
	if !CanProceed(&probe, all, &cfg) {
		t.Fatal("ego blocked by its own record")
	}
}

func TestRightOfWayEitherAxisRadius(t *testing.T) {
	cfg := DefaultConfig()
	cx, cy := cfg.CenterX, cfg.CenterY

	// On the vertical road the other vehicle is always near on the x
	// axis, so it blocks regardless of how far down it sits.
	far := staticBlocker(2, ApproachBottom, DestRight, cx, cy+cfg.JunctionRange+100)
	all := []Vehicle{testVehicle(1, ApproachLeft, DestLeft, &cfg), far}
	if CanProceed(&all[0], all, &cfg) {
		t.Fatal("on-axis vehicle beyond euclidean range must still block")
	}

	// Off both axes it is out of scope.
	all[1].X = cx + cfg.JunctionRange + 1
	all[1].Y = cy + cfg.JunctionRange + 1
	if !CanProceed(&all[0], all, &cfg) {
		t.Fatal("vehicle off both axes must not block")
	}
}
