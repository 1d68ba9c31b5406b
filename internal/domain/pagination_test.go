package domain

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, -1, 1, DefaultPageSize},
		{2, 5, 2, 5},
	}
	for _, tc := range cases {
		page, size := NormalizePage(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, page, size, tc.wantPage, tc.wantSize)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 1, 2)
	if len(p.Items) != 2 || p.Items[0] != 1 || p.Items[1] != 2 {
		t.Fatalf("page 1 items = %v", p.Items)
	}
	if !p.HasNext || p.HasPrev {
		t.Fatalf("page 1: HasNext=%v HasPrev=%v", p.HasNext, p.HasPrev)
	}
	if p.Total != 5 {
		t.Fatalf("total = %d, want 5", p.Total)
	}

	p = Paginate(items, 3, 2)
	if len(p.Items) != 1 || p.Items[0] != 5 {
		t.Fatalf("page 3 items = %v", p.Items)
	}
	if p.HasNext || !p.HasPrev {
		t.Fatalf("page 3: HasNext=%v HasPrev=%v", p.HasNext, p.HasPrev)
	}

	// Past-the-end page is empty, not a panic.
	p = Paginate(items, 10, 2)
	if len(p.Items) != 0 {
		t.Fatalf("page 10 items = %v, want empty", p.Items)
	}
}

func TestNewPage(t *testing.T) {
	// 10 total items, page 2 of size 4 holds 4 of them.
	p := NewPage([]string{"a", "b", "c", "d"}, 2, 4, 10)
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("HasNext=%v HasPrev=%v, want true/true", p.HasNext, p.HasPrev)
	}

	// Last partial page.
	p = NewPage([]string{"i", "j"}, 3, 4, 10)
	if p.HasNext || !p.HasPrev {
		t.Fatalf("HasNext=%v HasPrev=%v, want false/true", p.HasNext, p.HasPrev)
	}
}
