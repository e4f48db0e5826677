package model

import "time"

// LeadStatus is the lifecycle state of a booking or enquiry row.
const LeadPending = "pending"

// Booking is a booking request captured from the website's booking form.
type Booking struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	AltPhone        string
	PackageName     string
	PackageType     string
	Location        string
	Price           string
	TravelDate      string
	Travelers       int
	SpecialRequests string
	Status          string
	SourcePage      string
	CreatedAt       time.Time
}

// Enquiry is a general enquiry captured from the contact form or chat.
type Enquiry struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	Status     string
	Source     string
	SourcePage string
	CreatedAt  time.Time
}

// BookingRequest is the incoming payload for POST /bookings.
type BookingRequest struct {
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	AltPhone        string        `json:"alt_phone"`
	PackageName     string        `json:"package_name"`
	PackageType     string        `json:"package_type"`
	Location        string        `json:"location"`
	Price           string        `json:"price"`
	TravelDate      string        `json:"travel_date"`
	Travelers       int           `json:"travelers"`
	SpecialRequests string        `json:"special_requests"`
	Client          ClientContext `json:"client"`
}

// EnquiryRequest is the incoming payload for POST /enquiries.
type EnquiryRequest struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Subject string        `json:"subject"`
	Message string        `json:"message"`
	Client  ClientContext `json:"client"`
}
