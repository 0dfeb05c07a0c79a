package autopilot

import (
	"testing"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

func snapshot(ship core.Vec, hazards []sim.Hazard, pickups []sim.Pickup) sim.Snapshot {
	return sim.Snapshot{
		Phase:   sim.PhasePlaying,
		FieldW:  400,
		FieldH:  800,
		Player:  sim.PlayerState{Pos: ship, Radius: 25},
		Hazards: hazards,
		Pickups: pickups,
	}
}

func TestDecide(t *testing.T) {
	ship := core.Vec{X: 200, Y: 700}

	tests := []struct {
		name string
		snap sim.Snapshot
		want core.Action
	}{
		{
			name: "clear sky",
			snap: snapshot(ship, nil, nil),
			want: core.ActionNone,
		},
		{
			name: "hazard above and to the right",
			snap: snapshot(ship, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 220, Y: 600}, Size: 30}}, nil),
			want: core.ActionLeft,
		},
		{
			name: "hazard above and to the left",
			snap: snapshot(ship, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 180, Y: 600}, Size: 30}}, nil),
			want: core.ActionRight,
		},
		{
			name: "hazard far above is ignored",
			snap: snapshot(ship, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 200, Y: 100}, Size: 30}}, nil),
			want: core.ActionNone,
		},
		{
			name: "hazard already past is ignored",
			snap: snapshot(ship, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 200, Y: 780}, Size: 30}}, nil),
			want: core.ActionNone,
		},
		{
			name: "hazard in another lane is ignored",
			snap: snapshot(ship, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 330, Y: 600}, Size: 30}}, nil),
			want: core.ActionNone,
		},
		{
			name: "closest threat wins",
			snap: snapshot(ship, []sim.Hazard{
				{ID: 1, Pos: core.Vec{X: 190, Y: 500}, Size: 30},
				{ID: 2, Pos: core.Vec{X: 215, Y: 650}, Size: 30},
			}, nil),
			want: core.ActionLeft,
		},
		{
			name: "pinned against the left wall escapes right",
			snap: snapshot(core.Vec{X: 30, Y: 700}, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 40, Y: 650}, Size: 30}}, nil),
			want: core.ActionRight,
		},
		{
			name: "drifts toward a pickup",
			snap: snapshot(ship, nil, []sim.Pickup{{ID: 2, Pos: core.Vec{X: 320, Y: 400}, Radius: 15, Kind: sim.PickupShield}}),
			want: core.ActionRight,
		},
	}

	pilot := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pilot.Decide(tt.snap); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecideIdleOutsidePlay(t *testing.T) {
	s := snapshot(core.Vec{X: 200, Y: 700}, []sim.Hazard{{ID: 1, Pos: core.Vec{X: 210, Y: 650}, Size: 30}}, nil)
	s.Paused = true
	if got := New().Decide(s); got != core.ActionNone {
		t.Errorf("paused Decide() = %v, want None", got)
	}
	s.Paused = false
	s.Phase = sim.PhaseGameOver
	if got := New().Decide(s); got != core.ActionNone {
		t.Errorf("game-over Decide() = %v, want None", got)
	}
}
