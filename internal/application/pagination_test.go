package application

import "testing"

func TestNewPaginationInfo(t *testing.T) {
	cases := []struct {
		name        string
		page, size  int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"first of three", 0, 10, 25, 3, true, false},
		{"middle", 1, 10, 25, 3, true, true},
		{"last", 2, 10, 25, 3, false, true},
		{"exact fit", 1, 10, 20, 2, false, true},
		{"single short page", 0, 10, 3, 1, false, false},
		{"empty dataset", 0, 10, 0, 0, false, false},
		{"page beyond data", 100, 10, 25, 3, false, true},
		{"size one", 4, 1, 5, 5, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaginationInfo(tc.page, tc.size, tc.total)
			if p.Page != tc.page || p.Size != tc.size || p.TotalElements != tc.total {
				t.Errorf("echoed inputs wrong: %+v", p)
			}
			if p.TotalPages != tc.totalPages {
				t.Errorf("totalPages = %d, want %d", p.TotalPages, tc.totalPages)
			}
			if p.HasNext != tc.hasNext {
				t.Errorf("hasNext = %v, want %v", p.HasNext, tc.hasNext)
			}
			if p.HasPrevious != tc.hasPrevious {
				t.Errorf("hasPrevious = %v, want %v", p.HasPrevious, tc.hasPrevious)
			}
		})
	}
}
