package usecase

import "testing"

func TestPlatformFeeCents(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"zero", 0, 0},
		{"round number", 30000, 2400},       // $300 -> $24
		{"one dollar", 100, 8},
		{"rounds half up", 6, 0},            // 0.48 cents -> 0
		{"rounds half up boundary", 63, 5},  // 5.04 -> 5
		{"exact fee", 12450, 996},
		{"odd rate", 9999, 800},             // 799.92 -> 800
		{"large", 1_000_000_00, 8_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlatformFeeCents(tt.subtotal); got != tt.want {
				t.Errorf("PlatformFeeCents(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestPriceBooking(t *testing.T) {
	subtotal, fee, total := PriceBooking(15000, 2) // $150/h for 2h
	if subtotal != 30000 {
		t.Errorf("subtotal = %d, want 30000", subtotal)
	}
	if fee != 2400 {
		t.Errorf("fee = %d, want 2400", fee)
	}
	if total != 32400 {
		t.Errorf("total = %d, want 32400", total)
	}
}

func TestPriceBookingTotalInvariant(t *testing.T) {
	rates := []int64{0, 1, 99, 12345, 15000, 99999}
	for _, rate := range rates {
		for hours := 1; hours <= 6; hours++ {
			subtotal, fee, total := PriceBooking(rate, hours)
			if total != subtotal+fee {
				t.Errorf("PriceBooking(%d, %d): total %d != subtotal %d + fee %d",
					rate, hours, total, subtotal, fee)
			}
		}
	}
}
