package arena

import "testing"

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", d.String(), err)
		}
		if got != d {
			t.Fatalf("ParseDirection(%q) = %s, want %s", d.String(), got, d)
		}
	}

	if _, err := ParseDirection("up"); err == nil {
		t.Fatalf("expected error for unknown direction name")
	}
}

func TestDirectionVector(t *testing.T) {
	cases := []struct {
		dir    Direction
		dx, dy float64
	}{
		{North, 0, -1},
		{East, 1, 0},
		{South, 0, 1},
		{West, -1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Vector()
			if dx != tc.dx || dy != tc.dy {
				t.Fatalf("%s vector = (%v, %v), want (%v, %v)", tc.dir, dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestDirectionValid(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Fatalf("%s should be valid", d)
		}
	}
	if Direction(-1).Valid() || Direction(4).Valid() {
		t.Fatalf("out-of-range directions should be invalid")
	}
}
