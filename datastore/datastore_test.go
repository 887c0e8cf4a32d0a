package datastore

import (
	"fmt"
	"testing"
)

func TestParseListOptions(t *testing.T) {
	testCases := []struct {
		limit, offset int
		expected      ListOptions
	}{
		{0, 0, ListOptions{Limit: DefaultLimit, Offset: 0}},
		{10, 5, ListOptions{Limit: 10, Offset: 5}},
		{-5, 7, ListOptions{Limit: -1, Offset: 0}},
		{3, -2, ListOptions{Limit: 3, Offset: 0}},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			got := ParseListOptions(tc.limit, tc.offset)
			if got != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	testCases := []struct {
		name       string
		opts       ListOptions
		n          int
		start, end int
	}{
		{"whole list", ParseListOptions(0, 0), 4, 0, 4},
		{"window", ParseListOptions(2, 1), 4, 1, 3},
		{"window past end", ParseListOptions(10, 2), 4, 2, 4},
		{"offset past end", ParseListOptions(2, 9), 4, 4, 4},
		{"unlimited", ParseListOptions(-1, 0), 4, 0, 4},
		{"empty list", ParseListOptions(0, 0), 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.opts.Bounds(tc.n)
			if start != tc.start || end != tc.end {
				t.Errorf("expected [%d, %d), got [%d, %d)", tc.start, tc.end, start, end)
			}
		})
	}
}
