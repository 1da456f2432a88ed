package models

import "time"

// PartnerEndpoints maps logical operations onto relative paths of a partner API.
type PartnerEndpoints struct {
	GetUserDetails string `json:"getUserDetails"`
	DeleteBooking  string `json:"deleteBooking"`
}

// PartnerDescriptor identifies one partner booking system.
type PartnerDescriptor struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	BaseURL   string           `json:"baseUrl"`
	Endpoints PartnerEndpoints `json:"endpoints"`
	Active    bool             `json:"active"`
}

// WebsiteSource is the provenance tag attached to every aggregated record.
type WebsiteSource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`
}

// BookingRecord is one partner's booking entry. The shape is partner-defined;
// the aggregator only attaches the websiteSource tag and reads the creation
// timestamp for sorting.
type BookingRecord map[string]any

// CreatedAt extracts the record's creation time from "createdAt" or
// "created_at". ISO-8601 strings and epoch-millisecond numbers are accepted.
// Records without a usable timestamp report the zero time and sort last.
func (r BookingRecord) CreatedAt() time.Time {
	for _, key := range []string{"createdAt", "created_at"} {
		switch v := r[key].(type) {
		case string:
			if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
				return t
			}
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
		case float64:
			return time.UnixMilli(int64(v))
		case int64:
			return time.UnixMilli(v)
		}
	}
	return time.Time{}
}

// PartnerOutcome is the result of querying one partner during one aggregation
// pass. It is always a value, never an error: partner failures are folded in.
type PartnerOutcome struct {
	Success     bool            `json:"success"`
	PartnerID   string          `json:"partnerId"`
	PartnerName string          `json:"partnerName"`
	Count       int             `json:"count"`
	Data        []BookingRecord `json:"data"`
	Error       string          `json:"error,omitempty"`
	StatusHint  string          `json:"statusHint,omitempty"`
}

// WebsiteSummary is the per-partner entry of the aggregated response.
type WebsiteSummary struct {
	Website    string  `json:"website"`
	WebsiteID  string  `json:"websiteId"`
	Success    bool    `json:"success"`
	Count      int     `json:"count"`
	Error      *string `json:"error"`
	StatusHint *string `json:"statusHint"`
}

// AggregatedResponse is the merged output of one aggregate-all call.
type AggregatedResponse struct {
	Success            bool             `json:"success"`
	TotalUsers         int              `json:"totalUsers"`
	TotalWebsites      int              `json:"totalWebsites"`
	SuccessfulWebsites int              `json:"successfulWebsites"`
	FailedWebsites     int              `json:"failedWebsites"`
	WebsiteSummary     []WebsiteSummary `json:"websiteSummary"`
	Data               []BookingRecord  `json:"data"`
	FetchedAt          string           `json:"fetchedAt"`
}
