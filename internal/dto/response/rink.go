package response

import (
	"rink-booking/internal/data/entity"
)

type RinkResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Address    string  `json:"address"`
	HourlyRate float64 `json:"hourly_rate"`
}

type BookedSlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	RinkID      string               `json:"rink_id"`
	Date        string               `json:"date"`
	BookedSlots []BookedSlotResponse `json:"booked_slots"`
}

func RinkToResponse(rink *entity.Rink) RinkResponse {
	return RinkResponse{
		ID:         rink.ID.String(),
		Name:       rink.Name,
		City:       rink.City,
		Address:    rink.Address,
		HourlyRate: centsToUnits(rink.HourlyRateCents),
	}
}
