package model

// PageCount pairs a page path with its view count.
type PageCount struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyStats is the aggregate for one day's analytics report.
type DailyStats struct {
	TotalVisits       int         `json:"total_visits"`
	UniqueVisitors    int         `json:"unique_visitors"`
	AverageTimeOnSite float64     `json:"average_time_on_site"` // seconds
	TopPages          []PageCount `json:"top_pages"`
	ConversionRate    float64     `json:"conversion_rate"` // percent
	BookingCount      int         `json:"booking_count"`
	EnquiryCount      int         `json:"enquiry_count"`
}
