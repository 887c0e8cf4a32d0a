// Package datastore holds helpers shared by list endpoints.
package datastore

type ListOptions struct {
	Limit  int
	Offset int
}

const DefaultLimit = 1000

// ParseListOptions normalises raw query values. A zero limit means the
// default, a negative limit means everything from the start.
func ParseListOptions(limit, offset int) ListOptions {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		limit = -1
		offset = 0
	}
	if offset < 0 {
		offset = 0
	}
	return ListOptions{Limit: limit, Offset: offset}
}

// Bounds returns the [start, end) window of a list of length n.
func (o ListOptions) Bounds(n int) (int, int) {
	start := o.Offset
	if start > n {
		start = n
	}
	if o.Limit < 0 {
		return start, n
	}
	end := start + o.Limit
	if end > n {
		end = n
	}
	return start, end
}
