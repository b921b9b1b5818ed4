package entity

type Rink struct {
	BaseNoDelete
	Name            string `db:"name"`
	City            string `db:"city"`
	Address         string `db:"address"`
	HourlyRateCents int64  `db:"hourly_rate_cents"`
	IsActive        bool   `db:"is_active"`
}
