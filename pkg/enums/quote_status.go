package enums

import "fmt"

// QuoteStatus is the operational workflow tag staff attach to a quote.
// It is independent of confirmation: any value may follow any other.
type QuoteStatus string

const (
	QuoteStatusPending    QuoteStatus = "pending"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusIgnored    QuoteStatus = "ignored"
	QuoteStatusCompleted  QuoteStatus = "completed"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusInProgress,
	QuoteStatusIgnored,
	QuoteStatusCompleted,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
