package model

import "time"

// NotificationType distinguishes what kind of email the intent represents.
type NotificationType string

const (
	NotificationEnquiry   NotificationType = "enquiry"
	NotificationBooking   NotificationType = "booking"
	NotificationAnalytics NotificationType = "analytics"
)

// NotificationPayload is the business payload captured with an intent.
// Delivery is owned by a separate mailer process reading the table.
type NotificationPayload struct {
	Name        string
	Email       string
	Phone       string
	AltPhone    string
	PackageName string
	BookingDate string
	Travelers   int
	Price       string
	Message     string
}

// NotificationIntent is a durable "an email should eventually be sent"
// record. ClientReference is unique per send attempt.
type NotificationIntent struct {
	Type            NotificationType
	Recipient       string
	Subject         string
	ClientReference string
	Payload         NotificationPayload
	CreatedAt       time.Time
}

// Metadata flattens the payload into the stored client_metadata shape.
func (n NotificationIntent) Metadata() map[string]any {
	return map[string]any{
		"name":      n.Payload.Name,
		"email":     n.Payload.Email,
		"phone":     n.Payload.Phone,
		"altPhone":  n.Payload.AltPhone,
		"package":   n.Payload.PackageName,
		"date":      n.Payload.BookingDate,
		"travelers": n.Payload.Travelers,
		"price":     n.Payload.Price,
		"message":   n.Payload.Message,
	}
}
