package pagination

import "testing"

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{
		{0, 10}:    0,
		{1, 10}:    1,
		{10, 10}:   1,
		{11, 10}:   2,
		{250, 100}: 3,
		{5, 0}:     0,
	}
	for in, want := range cases {
		if got := TotalPages(in[0], in[1]); got != want {
			t.Fatalf("TotalPages(%d,%d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}

func TestBoundsClipsToLength(t *testing.T) {
	start, end := Bounds(Params{Page: 2, PerPage: 10}, 15)
	if start != 10 || end != 15 {
		t.Fatalf("expected [10,15), got [%d,%d)", start, end)
	}
}

func TestBoundsPastEndIsEmpty(t *testing.T) {
	start, end := Bounds(Params{Page: 5, PerPage: 10}, 15)
	if start != end {
		t.Fatalf("expected empty window, got [%d,%d)", start, end)
	}
}

func TestBoundsInvalidParams(t *testing.T) {
	if start, end := Bounds(Params{Page: 0, PerPage: 10}, 15); start != 0 || end != 0 {
		t.Fatalf("expected empty window for page 0, got [%d,%d)", start, end)
	}
	if (Params{Page: 1, PerPage: MaxPerPage + 1}).Valid() {
		t.Fatal("per_page above max must be invalid")
	}
}
