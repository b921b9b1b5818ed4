package request

type CreateCheckoutRequest struct {
	RinkID    string `json:"rink_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	Hours     int    `json:"hours" validate:"required,min=1"`
	Locale    string `json:"locale" validate:"omitempty,oneof=en sv fi de fr"`
}
