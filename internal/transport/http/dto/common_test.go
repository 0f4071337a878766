package dto

import "testing"

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2, 3}, 25, 2, 10)
	if p.Total != 25 || p.Page != 2 || p.PageSize != 10 {
		t.Fatalf("unexpected envelope: %+v", p)
	}
	if p.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", p.TotalPages)
	}
	if len(p.Data) != 3 {
		t.Errorf("expected data kept, got %v", p.Data)
	}
}

func TestNewPaginatedEmpty(t *testing.T) {
	p := NewPaginated([]string(nil), 0, 1, 10)
	if p.TotalPages != 0 {
		t.Errorf("expected 0 total pages for empty set, got %d", p.TotalPages)
	}
}
