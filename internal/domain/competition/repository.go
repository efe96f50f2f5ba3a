package competition

import "context"

// Filter narrows catalog scans. Empty fields match everything, and the
// "all" sentinels used by clients are resolved before the filter is
// built, so repositories apply fields verbatim.
type Filter struct {
	SportCategory string
	Province      string
	CityCounty    string
}

// Repository pages through the stored catalog. ListPage returns up to
// limit rows starting at offset in a stable order.
type Repository interface {
	ListPage(ctx context.Context, filter Filter, offset, limit int) ([]Competition, error)
}
