package list_vendor_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/bookings/models"
)

// ParseQuery собирает запрос листинга из query-параметров
func ParseQuery(vendorID int64, values url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{VendorID: vendorID}

	if s := values.Get("status"); s != "" {
		req.Status = &s
	}

	if d := values.Get("date"); d != "" {
		date, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		req.Date = &date
	}

	if p := values.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page %q", p)
		}
		req.Page = page
	}

	if l := values.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 || limit > domain.MaxPageLimit {
			return nil, fmt.Errorf("invalid limit %q", l)
		}
		req.Limit = limit
	}

	return req, nil
}
