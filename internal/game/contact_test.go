package game

import "testing"

func TestClassifyContact(t *testing.T) {
	rules := ContactRules{Range: 2.5, Collision: 1.6, NearMiss: 2.5}
	tests := []struct {
		name         string
		x, z         float64
		nearMissed   bool
		invulnerable bool
		want         Contact
	}{
		{"head on", 0, 0, false, false, ContactCollision},
		{"edge of collision", 1.59, 1, false, false, ContactCollision},
		{"collision while invulnerable", 0.5, 0, false, true, ContactNone},
		{"near miss", 1.6, 0, false, false, ContactNearMiss},
		{"near miss left", -2.4, -2, false, false, ContactNearMiss},
		{"near miss while invulnerable", 2, 0, false, true, ContactNearMiss},
		{"already near missed", 2, 0, true, false, ContactNone},
		{"too far sideways", 2.5, 0, false, false, ContactNone},
		{"too far ahead", 0, -2.5, false, false, ContactNone},
		{"too far behind", 0, 3, false, false, ContactNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyContact(rules, 0, tt.x, tt.z, tt.nearMissed, tt.invulnerable)
			if got != tt.want {
				t.Fatalf("ClassifyContact = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyContactUsesPlayerOffset(t *testing.T) {
	rules := ContactRules{Range: 2.5, Collision: 1.6, NearMiss: 2.5}
	if got := ClassifyContact(rules, 5, 7.5, 0, false, false); got != ContactNone {
		t.Fatalf("dx 2.5 = %v, want none", got)
	}
	if got := ClassifyContact(rules, 5.5, 7.5, 0, false, false); got != ContactNearMiss {
		t.Fatalf("dx 2.0 = %v, want near-miss", got)
	}
}
