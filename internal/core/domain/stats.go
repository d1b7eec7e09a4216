package domain

// Stats is the dashboard summary shown to administrators.
type Stats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalTestimonials   int64 `json:"totalTestimonials"`
	PendingTestimonials int64 `json:"pendingTestimonials"`
	TotalMessages       int64 `json:"totalMessages"`
	UnreadMessages      int64 `json:"unreadMessages"`
}
