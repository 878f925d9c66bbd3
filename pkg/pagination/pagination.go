package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 25
	// MaxPageSize caps how many rows any list query can request.
	MaxPageSize = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// NormalizePageSize enforces the configured default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizePage clamps the page number to the first page when unset.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts the normalized page/page-size pair into a row offset.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizePageSize(p.PageSize)
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return NormalizePageSize(p.PageSize)
}

// NextPage reports the follow-up page number, or nil when the page returned
// fewer rows than requested or the total has been reached.
func NextPage(p Params, returned int, total int64) *int {
	page := NormalizePage(p.Page)
	size := NormalizePageSize(p.PageSize)
	if returned < size {
		return nil
	}
	if int64(p.Offset()+returned) >= total {
		return nil
	}
	next := page + 1
	return &next
}
