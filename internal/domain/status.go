package domain

import "time"

type CatalogSource string

const (
	CatalogSourceUnloaded CatalogSource = "unloaded"
	CatalogSourceFeed     CatalogSource = "feed"
	CatalogSourceFallback CatalogSource = "fallback"

	// CatalogSourceEmptyFeed means the feed was reachable but had no usable
	// rows, so the fallback list is served.
	CatalogSourceEmptyFeed CatalogSource = "empty_feed"
)

// String representation (for logging)
func (s CatalogSource) String() string {
	return string(s)
}

// CatalogStatus tells a caller where the current product list came from and
// why, without changing what Load returns.
type CatalogStatus struct {
	Source   CatalogSource `json:"source"`
	Reason   string        `json:"reason,omitempty"`
	Accepted int           `json:"accepted"`
	Dropped  int           `json:"dropped"`
	LoadedAt *time.Time    `json:"loaded_at,omitempty"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}
