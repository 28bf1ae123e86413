package helpers

import "testing"

func TestNewPageWindowSplitsThirteenItems(t *testing.T) {
	first := NewPageWindow(1, 10, 13)
	if first.Offset() != 0 {
		t.Fatalf("page 1 offset = %d, want 0", first.Offset())
	}
	if !first.HasNext() {
		t.Fatal("page 1 of 13 items should have a next page")
	}
	if first.HasPrevious() {
		t.Fatal("page 1 never has a previous page")
	}

	second := NewPageWindow(2, 10, 13)
	if second.Offset() != 10 {
		t.Fatalf("page 2 offset = %d, want 10", second.Offset())
	}
	if second.HasNext() {
		t.Fatal("page 2 of 13 items is the last page")
	}
	if !second.HasPrevious() {
		t.Fatal("page 2 should have a previous page")
	}
}

func TestNewPageWindowClampsOutOfRange(t *testing.T) {
	window := NewPageWindow(99, 10, 13)
	if window.Number != 2 {
		t.Fatalf("page 99 of 13 items should clamp to 2, got %d", window.Number)
	}
}

func TestNewPageWindowClampsBelowOne(t *testing.T) {
	for _, page := range []int{0, -1, -100} {
		window := NewPageWindow(page, 10, 13)
		if window.Number != 1 {
			t.Fatalf("page %d should clamp to 1, got %d", page, window.Number)
		}
	}
}

func TestNewPageWindowEmptySequence(t *testing.T) {
	window := NewPageWindow(7, 10, 0)
	if window.Number != 1 {
		t.Fatalf("empty sequence should clamp to page 1, got %d", window.Number)
	}
	if window.HasNext() || window.HasPrevious() {
		t.Fatal("the only page of an empty sequence has no neighbours")
	}
	if window.Offset() != 0 {
		t.Fatalf("empty sequence offset = %d, want 0", window.Offset())
	}
}

func TestNewPageWindowExactMultiple(t *testing.T) {
	// 20 items at size 10 fill exactly two pages.
	window := NewPageWindow(2, 10, 20)
	if window.Number != 2 {
		t.Fatalf("page 2 should be in range, got %d", window.Number)
	}
	if window.HasNext() {
		t.Fatal("page 2 of 20 items is the last page")
	}

	clamped := NewPageWindow(3, 10, 20)
	if clamped.Number != 2 {
		t.Fatalf("page 3 of 20 items should clamp to 2, got %d", clamped.Number)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{13, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestWindowNeighbours(t *testing.T) {
	window := NewPageWindow(2, 10, 30)
	if window.Previous() != 1 {
		t.Fatalf("Previous() = %d, want 1", window.Previous())
	}
	if window.Next() != 3 {
		t.Fatalf("Next() = %d, want 3", window.Next())
	}
}
