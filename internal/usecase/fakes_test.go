package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rink-booking/internal/data/entity"
	"rink-booking/internal/data/repository"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/timeslot"
	"rink-booking/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes. The booking fake enforces the same
// overlap exclusion the database constraint does, guarded by a mutex,
// so concurrency tests exercise real contention.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	events   map[string]*entity.WebhookEvent

	insertErr     error
	confirmCalls  int
	setRefCalls   int
	lastPayRef    string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		events:   make(map[string]*entity.WebhookEvent),
	}
}

func (f *fakeBookingRepo) InsertPending(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return f.insertErr
	}

	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusCancelled {
			continue
		}
		if b.RinkID == booking.RinkID &&
			b.BookingDate.Equal(booking.BookingDate) &&
			timeslot.Overlaps(booking.StartTime, booking.EndTime, b.StartTime, b.EndTime) {
			return repository.ErrSlotTaken
		}
	}

	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) FindActiveByRinkDate(ctx context.Context, rinkID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.RinkID == rinkID && b.BookingDate.Equal(date) && b.Status != entity.BookingStatusCancelled {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) SetPaymentRef(ctx context.Context, bookingID uuid.UUID, paymentRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setRefCalls++
	f.lastPayRef = paymentRef
	if b, ok := f.bookings[bookingID]; ok && b.Status == entity.BookingStatusPending {
		b.PaymentIntentID = &paymentRef
	}
	return nil
}

func (f *fakeBookingRepo) ConfirmIfNotProcessed(ctx context.Context, bookingID uuid.UUID, event *entity.WebhookEvent, paymentRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.confirmCalls++

	if _, seen := f.events[event.ProviderEventID]; seen {
		return false, repository.ErrDuplicateEvent
	}
	f.events[event.ProviderEventID] = event

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusConfirmed
	b.PaymentIntentID = &paymentRef
	return true, nil
}

func (f *fakeBookingRepo) CancelStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			b.Status = entity.BookingStatusCancelled
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) statusOf(id uuid.UUID) entity.BookingStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		return b.Status
	}
	return ""
}

type fakeRinkRepo struct {
	rinks map[uuid.UUID]*entity.Rink
}

func newFakeRinkRepo(rinks ...*entity.Rink) *fakeRinkRepo {
	f := &fakeRinkRepo{rinks: make(map[uuid.UUID]*entity.Rink)}
	for _, r := range rinks {
		f.rinks[r.ID] = r
	}
	return f
}

func (f *fakeRinkRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rink, error) {
	return f.rinks[id], nil
}

func (f *fakeRinkRepo) FindAllActive(ctx context.Context) ([]*entity.Rink, error) {
	var out []*entity.Rink
	for _, r := range f.rinks {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

type fakeWebhookEventRepo struct {
	mu     sync.Mutex
	events map[string]*entity.WebhookEvent
}

func newFakeWebhookEventRepo() *fakeWebhookEventRepo {
	return &fakeWebhookEventRepo{events: make(map[string]*entity.WebhookEvent)}
}

func (f *fakeWebhookEventRepo) Record(ctx context.Context, event *entity.WebhookEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, seen := f.events[event.ProviderEventID]; seen {
		return repository.ErrDuplicateEvent
	}
	f.events[event.ProviderEventID] = event
	return nil
}

func (f *fakeWebhookEventRepo) FindByProviderEventID(ctx context.Context, providerEventID string) (*entity.WebhookEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events[providerEventID], nil
}

type fakeSessionRepo struct{}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakePaymentClient struct {
	mu       sync.Mutex
	calls    int
	err      error
	session  payment.Session
	lastArgs payment.SessionParams
}

func (f *fakePaymentClient) CreateSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastArgs = params
	if f.err != nil {
		return nil, f.err
	}
	s := f.session
	if s.ID == "" {
		s.ID = fmt.Sprintf("cs_test_%d", f.calls)
	}
	if s.URL == "" {
		s.URL = "https://pay.example.com/session/" + s.ID
	}
	return &s, nil
}

type fakeMailer struct {
	mu         sync.Mutex
	sent       []string
	subjects   []string
	err        error
}

func (f *fakeMailer) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, recipient)
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func testConfig() *utils.Config {
	return &utils.Config{
		Payment: utils.PaymentConfig{
			Currency:           "usd",
			WebhookSecret:      "whsec_test",
			SuccessURL:         "https://rink.example.com/success",
			CancelURL:          "https://rink.example.com/cancel",
			SignatureTolerance: 5 * time.Minute,
		},
		Booking: utils.BookingConfig{
			MaxHours:      6,
			PendingTTL:    time.Hour,
			SweepInterval: 15 * time.Minute,
		},
	}
}

func testRepos(booking *fakeBookingRepo, rink *fakeRinkRepo, user *fakeUserRepo, events *fakeWebhookEventRepo) *repository.Repository {
	return &repository.Repository{
		User:         user,
		Session:      &fakeSessionRepo{},
		Rink:         rink,
		Booking:      booking,
		WebhookEvent: events,
	}
}
