package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"rink-booking/internal/data/entity"
	"rink-booking/internal/dto/request"
	"rink-booking/pkg/timeslot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func testRink(rateCents int64) *entity.Rink {
	return &entity.Rink{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "North Arena",
		City:         "Duluth",
		Address:      "1 Rink Way",
		HourlyRateCents: rateCents,
		IsActive:     true,
	}
}

func testUser() *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "skater",
		Email:    "skater@example.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
}

func TestCreateCheckoutHappyPath(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	rink := testRink(15000)
	user := testUser()
	pay := &fakePaymentClient{}

	svc := NewCheckoutService(
		testRepos(bookingRepo, newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), pay, zap.NewNop(),
	)

	resp, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      futureDate(7),
		StartTime: "18:00",
		Hours:     2,
	})
	if err != nil {
		t.Fatalf("CreateCheckout() error = %v", err)
	}

	if resp.PaymentRedirectURL == "" {
		t.Error("expected a payment redirect URL")
	}
	if resp.Total != 324.00 {
		t.Errorf("Total = %.2f, want 324.00 (300 subtotal + 8%% fee)", resp.Total)
	}
	if pay.calls != 1 {
		t.Errorf("payment session calls = %d, want 1", pay.calls)
	}
	if pay.lastArgs.AmountMinor != 32400 {
		t.Errorf("session amount = %d minor units, want 32400", pay.lastArgs.AmountMinor)
	}

	bookingID := uuid.MustParse(resp.BookingID)
	if got := bookingRepo.statusOf(bookingID); got != entity.BookingStatusPending {
		t.Errorf("booking status = %q, want pending", got)
	}
}

func TestCreateCheckoutRejectsPastDate(t *testing.T) {
	rink := testRink(15000)
	user := testUser()

	svc := NewCheckoutService(
		testRepos(newFakeBookingRepo(), newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), &fakePaymentClient{}, zap.NewNop(),
	)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      "2020-01-15",
		StartTime: "18:00",
		Hours:     1,
	})
	if !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("error = %v, want ErrInvalidBooking", err)
	}
}

func TestCreateCheckoutRejectsCrossMidnight(t *testing.T) {
	rink := testRink(15000)
	user := testUser()
	pay := &fakePaymentClient{}

	svc := NewCheckoutService(
		testRepos(newFakeBookingRepo(), newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), pay, zap.NewNop(),
	)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      futureDate(7),
		StartTime: "22:00",
		Hours:     3,
	})
	if !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("error = %v, want ErrInvalidBooking", err)
	}
	if pay.calls != 0 {
		t.Errorf("payment session calls = %d, want 0", pay.calls)
	}
}

func TestCreateCheckoutRejectsExcessiveDuration(t *testing.T) {
	rink := testRink(15000)
	user := testUser()

	svc := NewCheckoutService(
		testRepos(newFakeBookingRepo(), newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), &fakePaymentClient{}, zap.NewNop(),
	)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      futureDate(7),
		StartTime: "08:00",
		Hours:     7,
	})
	if !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("error = %v, want ErrInvalidBooking", err)
	}
}

func TestCreateCheckoutSlotConflictFromPreCheck(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	rink := testRink(15000)
	user := testUser()
	date, _ := time.Parse("2006-01-02", futureDate(7))

	taken, _ := timeslot.ParseClock("18:00")
	takenEnd, _ := timeslot.ParseClock("20:00")
	bookingRepo.bookings[uuid.New()] = &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		RinkID:       rink.ID,
		BookingDate:  date,
		StartTime:    taken,
		EndTime:      takenEnd,
		Status:       entity.BookingStatusPending,
	}

	pay := &fakePaymentClient{}
	svc := NewCheckoutService(
		testRepos(bookingRepo, newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), pay, zap.NewNop(),
	)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      date.Format("2006-01-02"),
		StartTime: "19:00",
		Hours:     2,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("error = %v, want ErrSlotUnavailable", err)
	}
	if pay.calls != 0 {
		t.Errorf("payment session calls = %d, want 0", pay.calls)
	}
}

func TestCreateCheckoutTouchingSlotsAllowed(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	rink := testRink(15000)
	user := testUser()
	date, _ := time.Parse("2006-01-02", futureDate(7))

	taken, _ := timeslot.ParseClock("18:00")
	takenEnd, _ := timeslot.ParseClock("20:00")
	bookingRepo.bookings[uuid.New()] = &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		RinkID:       rink.ID,
		BookingDate:  date,
		StartTime:    taken,
		EndTime:      takenEnd,
		Status:       entity.BookingStatusConfirmed,
	}

	svc := NewCheckoutService(
		testRepos(bookingRepo, newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), &fakePaymentClient{}, zap.NewNop(),
	)

	// 20:00 starts exactly where the existing booking ends
	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      date.Format("2006-01-02"),
		StartTime: "20:00",
		Hours:     1,
	})
	if err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
}

func TestCreateCheckoutUpstreamFailureLeavesPending(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	rink := testRink(15000)
	user := testUser()
	pay := &fakePaymentClient{err: fmt.Errorf("provider 502")}

	svc := NewCheckoutService(
		testRepos(bookingRepo, newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), pay, zap.NewNop(),
	)

	_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
		RinkID:    rink.ID.String(),
		Date:      futureDate(7),
		StartTime: "10:00",
		Hours:     1,
	})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}

	// The pending row still holds the slot for the housekeeping sweep
	var pending int
	for _, b := range bookingRepo.bookings {
		if b.Status == entity.BookingStatusPending {
			pending++
		}
	}
	if pending != 1 {
		t.Errorf("pending bookings = %d, want 1", pending)
	}
}

func TestCreateCheckoutConcurrentSameSlot(t *testing.T) {
	bookingRepo := newFakeBookingRepo()
	rink := testRink(15000)
	user := testUser()

	svc := NewCheckoutService(
		testRepos(bookingRepo, newFakeRinkRepo(rink), newFakeUserRepo(user), newFakeWebhookEventRepo()),
		testConfig(), &fakePaymentClient{}, zap.NewNop(),
	)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateCheckout(context.Background(), user.ID.String(), &request.CreateCheckoutRequest{
				RinkID:    rink.ID.String(),
				Date:      futureDate(7),
				StartTime: "18:00",
				Hours:     2,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("winners = %d, want exactly 1", wins)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}
}
