package entity

import "strings"

// Location is the address block attached to a business record.
type Location struct {
	Address1 string `json:"address1,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Coordinates is a lat/lon pair in floating point degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Category labels a business with a display title and optional alias.
type Category struct {
	Title string `json:"title"`
	Alias string `json:"alias,omitempty"`
}

// Action is an actionable link carried on a business record, e.g. a
// reservation deep link.
type Action struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Record is a normalized business recommendation as surfaced to the UI.
// Records are created fresh each turn and not mutated afterwards, except for
// slot assignment at normalization time.
type Record struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	URL            string       `json:"url"`
	Phone          string       `json:"phone,omitempty"`
	Rating         *float64     `json:"rating,omitempty"`
	Price          string       `json:"price,omitempty"`
	Distance       *float64     `json:"distance,omitempty"`
	Location       *Location    `json:"location,omitempty"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	Categories     []Category   `json:"categories,omitempty"`
	ReservationURL string       `json:"reservation_url,omitempty"`
	Actions        []Action     `json:"actions,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	MockSlots      []string     `json:"mockSlots,omitempty"`
}

// SummaryBlock mirrors the optional contextual-info wrapper on raw records.
type SummaryBlock struct {
	Summary string `json:"summary,omitempty"`
}

// SummariesBlock mirrors the optional short-summary wrapper on raw records.
type SummariesBlock struct {
	Short string `json:"short,omitempty"`
}

// AttributesBlock mirrors the business-attribute wrapper on raw records.
type AttributesBlock struct {
	BizSummary *SummaryBlock `json:"biz_summary,omitempty"`
}

// RawRecord is a business record as returned by the recommendation API. The
// upstream sometimes nests the actual businesses under a "businesses" list
// and sometimes returns them flat; RawRecord covers both shapes.
type RawRecord struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name,omitempty"`
	URL            string          `json:"url,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	Price          string          `json:"price,omitempty"`
	Distance       *float64        `json:"distance,omitempty"`
	Location       *Location       `json:"location,omitempty"`
	Coordinates    *Coordinates    `json:"coordinates,omitempty"`
	Categories     []Category      `json:"categories,omitempty"`
	ReservationURL string          `json:"reservation_url,omitempty"`
	Actions        []Action        `json:"actions,omitempty"`
	ContextualInfo *SummaryBlock    `json:"contextual_info,omitempty"`
	Summaries      *SummariesBlock  `json:"summaries,omitempty"`
	Attributes     *AttributesBlock `json:"attributes,omitempty"`
	Businesses     []RawRecord     `json:"businesses,omitempty"`
}

// Key returns the identity used for deduplication: id, else name, else url.
// An empty key means the record cannot be identified at all.
func (r Record) Key() string {
	switch {
	case r.ID != "":
		return r.ID
	case r.Name != "":
		return r.Name
	default:
		return r.URL
	}
}

// Reservable reports whether the record carries a reservation URL or a
// reservation-typed action.
func (r Record) Reservable() bool {
	if r.ReservationURL != "" {
		return true
	}
	for _, a := range r.Actions {
		if a.Type == "reservation" {
			return true
		}
	}
	return false
}

// ResolveReservationURL returns the best reservation link for the record:
// the explicit reservation URL, else the first reservation action's URL,
// else the record's general URL. The second value is false when no usable
// URL exists.
func (r Record) ResolveReservationURL() (string, bool) {
	if r.ReservationURL != "" {
		return r.ReservationURL, true
	}
	url := r.URL
	for _, a := range r.Actions {
		if a.Type == "reservation" && a.URL != "" {
			url = a.URL
			break
		}
	}
	if strings.TrimSpace(url) == "" {
		return "", false
	}
	return url, true
}

// AnyReservable reports whether at least one record in the list is reservable.
func AnyReservable(records []Record) bool {
	for _, r := range records {
		if r.Reservable() {
			return true
		}
	}
	return false
}

// AnyRawReservable is AnyReservable over raw records, used before
// normalization to decide the rewrite reservation hint.
func AnyRawReservable(raw []RawRecord) bool {
	for _, r := range raw {
		rec := Record{ReservationURL: r.ReservationURL, Actions: r.Actions}
		if rec.Reservable() {
			return true
		}
	}
	return false
}
