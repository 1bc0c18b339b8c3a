package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 2, End: 10}, Span{File: 1, Start: 4, End: 6}, Span{File: 1, Start: 2, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 7}
	if s.Empty() || s.Len() != 4 {
		t.Errorf("unexpected Empty/Len for %v", s)
	}
	if !s.Contains(3) || s.Contains(7) {
		t.Errorf("Contains is not half-open for %v", s)
	}
	if s.String() != "0:3-7" {
		t.Errorf("String() = %q", s.String())
	}
}
