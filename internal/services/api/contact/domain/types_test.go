package domain

import (
	"math"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, ok := ParseStatus(string(s))
		if !ok || got != s {
			t.Fatalf("ParseStatus(%q) = %q %v", s, got, ok)
		}
	}
	for _, raw := range []string{"", "done", "PENDING", " pending"} {
		if _, ok := ParseStatus(raw); ok {
			t.Fatalf("ParseStatus(%q) accepted", raw)
		}
	}
}

func TestServiceKindValid(t *testing.T) {
	if !ServiceITConsulting.Valid() {
		t.Fatal("it-consulting should be valid")
	}
	if ServiceKind("web_development").Valid() {
		t.Fatal("underscore variant should be invalid")
	}
}

func TestNormalizePaging(t *testing.T) {
	cases := []struct{ page, limit, wantPage, wantLimit int }{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 1000, 1, 100},
		{4, 1, 4, 1},
		{MaxPage + 1, 20, MaxPage, 20},
		{math.MaxInt, 100, MaxPage, 100},
	}
	for _, tc := range cases {
		p, l := NormalizePaging(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Fatalf("NormalizePaging(%d,%d) = %d,%d", tc.page, tc.limit, p, l)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{57, 20, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d,%d) = %d want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
