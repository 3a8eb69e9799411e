package domain

import (
	"strings"
	"time"
)

// Notice is the canonical structured result of extracting a procurement
// notice document. Every textual field defaults to the empty string once
// extraction completes; CurrencyRate stays nil until the aggregation or
// render stage supplies a value.
type Notice struct {
	Process      string     `json:"process"`
	Timestamp    time.Time  `json:"timestamp"`
	Organ        string     `json:"organ"`
	Title        string     `json:"title"`
	Portal       string     `json:"portal"`
	NoticeID     string     `json:"notice_id"`
	Client       string     `json:"client"`
	Object       string     `json:"object"`
	Modality     string     `json:"modality"`
	Sample       string     `json:"sample"`
	Delivery     string     `json:"delivery"`
	CostCenter   string     `json:"cost_center"`
	Attestation  bool       `json:"attestation"`
	Challenge    string     `json:"challenge"`
	Notes        string     `json:"notes"`
	CurrencyRate *float64   `json:"currency_rate,omitempty"`
	Items        []LineItem `json:"items"`
}

// HasKeyField reports whether at least one of the fields that identify a
// notice is non-empty after trimming. Used to decide whether an extracted
// record is worth accepting.
func (n *Notice) HasKeyField() bool {
	return strings.TrimSpace(n.Process) != "" ||
		strings.TrimSpace(n.Object) != "" ||
		strings.TrimSpace(n.NoticeID) != "" ||
		strings.TrimSpace(n.Client) != ""
}

// LineItem is one priced line entry within a Notice. Number is 1-based and
// unique within the record; slice order is presentation order.
type LineItem struct {
	Number      int        `json:"number"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Quantity    int        `json:"quantity"`
	UnitCost    float64    `json:"unit_cost"`
	Freight     float64    `json:"freight"`
	Origin      ItemOrigin `json:"origin"`
}

// ResultSheet is the flat tabular record used by the second spreadsheet
// output shape.
type ResultSheet struct {
	ProcessNumber string       `json:"process_number"`
	Organ         string       `json:"organ"`
	Date          time.Time    `json:"date"`
	Items         []ResultItem `json:"items"`
}

// ResultItem is one row of a ResultSheet.
type ResultItem struct {
	Number   string  `json:"number"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Position int     `json:"position"`
	Company  string  `json:"company"`
	Brand    string  `json:"brand"`
	Cost     float64 `json:"cost"`
	Value    float64 `json:"value"`
}

// Supplier is a candidate vendor for a notice's object.
type Supplier struct {
	Name  string `json:"name"`
	Site  string `json:"site"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}
