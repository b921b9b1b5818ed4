package response

import (
	"time"

	"rink-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	OrderID     string               `json:"order_id"`
	UserID      string               `json:"user_id"`
	RinkID      string               `json:"rink_id"`
	RinkName    string               `json:"rink_name,omitempty"`
	Date        string               `json:"date"`
	StartTime   string               `json:"start_time"`
	EndTime     string               `json:"end_time"`
	Hours       int                  `json:"hours"`
	Subtotal    float64              `json:"subtotal"`
	PlatformFee float64              `json:"platform_fee"`
	Total       float64              `json:"total"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CheckoutResponse carries the redirect URL the UI sends the user to
type CheckoutResponse struct {
	BookingID          string  `json:"booking_id"`
	OrderID            string  `json:"order_id"`
	PaymentRedirectURL string  `json:"payment_redirect_url"`
	Total              float64 `json:"total"`
}

func BookingToResponse(booking *entity.Booking, rinkName string) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		OrderID:     booking.OrderID,
		UserID:      booking.UserID.String(),
		RinkID:      booking.RinkID.String(),
		RinkName:    rinkName,
		Date:        booking.BookingDate.Format("2006-01-02"),
		StartTime:   booking.StartTime.String(),
		EndTime:     booking.EndTime.String(),
		Hours:       booking.Hours,
		Subtotal:    centsToUnits(booking.SubtotalCents),
		PlatformFee: centsToUnits(booking.FeeCents),
		Total:       centsToUnits(booking.TotalCents),
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}
