package game

import "testing"

func TestParticlesAgeAndDrift(t *testing.T) {
	ps := NewParticleSystem()
	ps.Emit(Position{X: 1, Y: 0.5, Z: 1.5}, 1)
	ps.Emit(Position{X: -1, Y: 0.5, Z: 1.5}, 0.25)

	ps.Update(0.5, 10)
	views := ps.AppendViews(nil)
	if len(views) != 1 {
		t.Fatalf("%d particles alive, want 1", len(views))
	}
	if views[0].Z != 6.5 || views[0].Life != 0.5 {
		t.Fatalf("particle z=%v life=%v, want 6.5 and 0.5", views[0].Z, views[0].Life)
	}

	ps.Update(0.5, 10)
	if ps.Count() != 0 {
		t.Fatalf("%d particles alive after expiry", ps.Count())
	}
}

func TestParticlesClear(t *testing.T) {
	ps := NewParticleSystem()
	for i := 0; i < 10; i++ {
		ps.Emit(Position{}, 1)
	}
	ps.Clear()
	if ps.Count() != 0 {
		t.Fatalf("count = %d after Clear", ps.Count())
	}
	ps.Emit(Position{}, 1)
	if ps.Count() != 1 {
		t.Fatal("cannot emit after Clear")
	}
}
