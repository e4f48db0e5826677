package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"visitor-insights-service/internal/model"
)

// BookingRepository persists booking requests.
type BookingRepository interface {
	Create(ctx context.Context, booking model.Booking) error
}

// EnquiryRepository persists enquiries from the contact form and chat.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry model.Enquiry) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a BookingRepository backed by PostgreSQL.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const insertBookingQuery = `
	INSERT INTO bookings (id, name, email, phone, alt_phone, package_name, package_type,
		location, price, travel_date, num_travelers, special_requests, status, source_page)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (r *bookingRepository) Create(ctx context.Context, booking model.Booking) error {
	_, err := r.pool.Exec(ctx, insertBookingQuery,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.AltPhone,
		booking.PackageName,
		booking.PackageType,
		booking.Location,
		booking.Price,
		booking.TravelDate,
		booking.Travelers,
		booking.SpecialRequests,
		booking.Status,
		booking.SourcePage,
	)
	return err
}

type enquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository creates an EnquiryRepository backed by PostgreSQL.
func NewEnquiryRepository(pool *pgxpool.Pool) EnquiryRepository {
	return &enquiryRepository{pool: pool}
}

const insertEnquiryQuery = `
	INSERT INTO enquiries (id, name, email, phone, subject, message, status, source, source_page)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (r *enquiryRepository) Create(ctx context.Context, enquiry model.Enquiry) error {
	_, err := r.pool.Exec(ctx, insertEnquiryQuery,
		enquiry.ID,
		enquiry.Name,
		enquiry.Email,
		enquiry.Phone,
		enquiry.Subject,
		enquiry.Message,
		enquiry.Status,
		enquiry.Source,
		enquiry.SourcePage,
	)
	return err
}
