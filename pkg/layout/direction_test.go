package layout

import "testing"

func TestDirectionNext(t *testing.T) {
	tests := []struct {
		in, want Direction
	}{
		{Up, Right},
		{Right, Down},
		{Down, Left},
		{Left, Up},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := tt.in.Next(); got != tt.want {
				t.Errorf("%v.Next() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDirectionPreviousInvertsNext(t *testing.T) {
	for _, d := range Directions {
		if got := d.Next().Previous(); got != d {
			t.Errorf("%v.Next().Previous() = %v, want %v", d, got, d)
		}
		if got := d.Previous().Next(); got != d {
			t.Errorf("%v.Previous().Next() = %v, want %v", d, got, d)
		}
	}
}

func TestDirectionCycle(t *testing.T) {
	for _, start := range Directions {
		seen := map[Direction]bool{}
		d := start
		for range 4 {
			d = d.Next()
			seen[d] = true
		}
		if d != start {
			t.Errorf("four Next() from %v ended at %v", start, d)
		}
		if len(seen) != 4 {
			t.Errorf("cycle from %v visited %d directions, want 4", start, len(seen))
		}
	}
}

func TestDirectionZeroValueIsUp(t *testing.T) {
	var d Direction
	if d != Up {
		t.Errorf("zero Direction = %v, want up", d)
	}
}

func TestDirectionValid(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Errorf("%v.Valid() = false", d)
		}
	}
	if Direction(4).Valid() || Direction(-1).Valid() {
		t.Error("out-of-range direction reported valid")
	}
	if got := Direction(7).String(); got != "Direction(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDirectionNextPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Next() on invalid direction did not panic")
		}
	}()
	Direction(9).Next()
}
