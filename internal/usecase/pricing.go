package usecase

// Platform fee rate is fixed at 8%.
const feeRateBasisPoints = 800

// PlatformFeeCents computes round(subtotal * 0.08, 2) in integer
// cents, round half up. Integer arithmetic, no float drift.
func PlatformFeeCents(subtotalCents int64) int64 {
	return (subtotalCents*feeRateBasisPoints + 5000) / 10000
}

// PriceBooking derives subtotal, platform fee and total from the
// rink's hourly rate. total = subtotal + fee always holds.
func PriceBooking(hourlyRateCents int64, hours int) (subtotalCents, feeCents, totalCents int64) {
	subtotalCents = hourlyRateCents * int64(hours)
	feeCents = PlatformFeeCents(subtotalCents)
	totalCents = subtotalCents + feeCents
	return subtotalCents, feeCents, totalCents
}
