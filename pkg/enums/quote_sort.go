package enums

import "fmt"

// QuoteSortKey names the columns the quote list can be ordered by.
type QuoteSortKey string

const (
	QuoteSortCreatedAt  QuoteSortKey = "created_at"
	QuoteSortClientName QuoteSortKey = "client_name"
	QuoteSortRateAmount QuoteSortKey = "rate_amount"
)

var validQuoteSortKeys = []QuoteSortKey{
	QuoteSortCreatedAt,
	QuoteSortClientName,
	QuoteSortRateAmount,
}

// String implements fmt.Stringer.
func (q QuoteSortKey) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteSortKey.
func (q QuoteSortKey) IsValid() bool {
	for _, candidate := range validQuoteSortKeys {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteSortKey converts raw input into a QuoteSortKey.
func ParseQuoteSortKey(value string) (QuoteSortKey, error) {
	for _, candidate := range validQuoteSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote sort key %q", value)
}

// SortDirection is the order applied to the active sort key.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// String implements fmt.Stringer.
func (s SortDirection) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortDirection.
func (s SortDirection) IsValid() bool {
	return s == SortAscending || s == SortDescending
}

// ParseSortDirection converts raw input into a SortDirection.
func ParseSortDirection(value string) (SortDirection, error) {
	switch SortDirection(value) {
	case SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	}
	return "", fmt.Errorf("invalid sort direction %q", value)
}
