package client

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"courtBooker/internal/http-server/handlers/schedule/confirmBooking"
	"courtBooker/internal/http-server/handlers/schedule/createBooking"
	"courtBooker/internal/http-server/handlers/schedule/getBookedSlots"
	"courtBooker/internal/http-server/handlers/schedule/getMyGames"
	"courtBooker/internal/http-server/handlers/user/loginUser"
	"courtBooker/internal/http-server/handlers/user/registerUser"
	"courtBooker/internal/lib/logger/handlers/slogdiscard"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for the postgres storage with the same
// conflict semantics: confirmed slots are unique, pending ones are not, and
// confirm does not re-check occupancy.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[string]models.User
	bookings []models.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]models.User{}}
}

func (f *fakeStore) CreateUser(name, email, phone, passwordHash string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[email]; ok {
		return models.User{}, storage.ErrEmailTaken
	}

	f.nextID++
	user := models.User{ID: f.nextID, Name: name, Email: email, Phone: phone, PasswordHash: passwordHash}
	f.users[email] = user

	return user, nil
}

func (f *fakeStore) UserByEmail(email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeStore) CreateBooking(userID int64, date, gameTime, status string) (models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if status == models.StatusConfirmed {
		for _, b := range f.bookings {
			if b.Date == date && b.Time == gameTime && b.Status == models.StatusConfirmed {
				return models.Booking{}, storage.ErrSlotTaken
			}
		}
	}

	f.nextID++
	booking := models.Booking{ID: f.nextID, UserID: userID, Date: date, Time: gameTime, Status: status}
	f.bookings = append(f.bookings, booking)

	return booking, nil
}

func (f *fakeStore) ConfirmBooking(id int64) (models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings[i].Status = models.StatusConfirmed
			return f.bookings[i], nil
		}
	}

	return models.Booking{}, storage.ErrBookingNotFound
}

func (f *fakeStore) BookedSlots() (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booked := map[string][]string{}
	for _, b := range f.bookings {
		if b.Status == models.StatusConfirmed {
			booked[b.Date] = append(booked[b.Date], b.Time)
		}
	}

	return booked, nil
}

func (f *fakeStore) UserBookings(userID int64) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var mine []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			mine = append(mine, b)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		if mine[i].Date != mine[j].Date {
			return mine[i].Date > mine[j].Date
		}
		return mine[i].Time > mine[j].Time
	})

	return mine, nil
}

func newTestServer(t *testing.T) (*Client, *fakeStore) {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := newFakeStore()

	router := chi.NewRouter()
	router.Post("/register", registerUser.New(log, store))
	router.Post("/login", loginUser.New(log, store, "test-secret", time.Hour))
	router.Get("/schedules", getBookedSlots.New(log, store))
	router.Get("/my-games/{userId}", getMyGames.New(log, store))
	router.Post("/schedules", createBooking.New(log, store))
	router.Put("/schedules/{gameId}/confirm", confirmBooking.New(log, store))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second), store
}

func newLoggedInSession(t *testing.T, api *Client, email string) *Session {
	t.Helper()

	session := NewSession(api)
	err := session.Register(context.Background(), "Player", email, "", "s3cret")
	require.NoError(t, err)
	require.NotZero(t, session.User.ID)

	return session
}

func TestReserveThenPayRoundTrip(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	session := newLoggedInSession(t, api, "alice@example.com")
	ctx := context.Background()

	require.NoError(t, session.SelectSlot("2025-08-30", "18:30"))

	booking, err := session.Reserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Nil(t, session.Selected)

	// pending booking is in my games but does not occupy the slot
	require.Len(t, session.MyGames, 1)
	assert.Equal(t, models.StatusPending, session.MyGames[0].Status)
	assert.NotContains(t, session.Booked["2025-08-30"], "18:30")
	assert.Contains(t, session.AvailableTimes("2025-08-30"), "18:30")

	session.StartPaymentFor(session.MyGames[0])

	confirmed, err := session.ConfirmPayment(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, confirmed.ID)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	require.Len(t, session.MyGames, 1)
	assert.Equal(t, models.StatusConfirmed, session.MyGames[0].Status)
	assert.Equal(t, []string{"18:30"}, session.Booked["2025-08-30"])
	assert.NotContains(t, session.AvailableTimes("2025-08-30"), "18:30")
}

func TestPayNowSkipsPending(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	session := newLoggedInSession(t, api, "alice@example.com")
	ctx := context.Background()

	require.NoError(t, session.SelectSlot("2025-08-30", "20:00"))
	require.NoError(t, session.StartPayment())
	require.NotNil(t, session.ToPay)
	assert.Zero(t, session.ToPay.ID)

	confirmed, err := session.ConfirmPayment(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	assert.Nil(t, session.ToPay)

	require.Len(t, session.MyGames, 1)
	assert.Equal(t, models.StatusConfirmed, session.MyGames[0].Status)
}

func TestSecondConfirmedCreateLosesTheSlot(t *testing.T) {
	t.Parallel()

	api, store := newTestServer(t)
	ctx := context.Background()

	alice := newLoggedInSession(t, api, "alice@example.com")
	bob := newLoggedInSession(t, api, "bob@example.com")

	require.NoError(t, alice.SelectSlot("2025-08-30", "18:30"))
	require.NoError(t, alice.StartPayment())
	_, err := alice.ConfirmPayment(ctx)
	require.NoError(t, err)

	// bob selected before alice's booking landed in his cache
	require.NoError(t, bob.SelectSlot("2025-08-30", "18:30"))
	require.NoError(t, bob.StartPayment())
	_, err = bob.ConfirmPayment(ctx)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "this slot is already booked", apiErr.Message)

	// exactly one confirmed booking holds the slot
	booked, err := store.BookedSlots()
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30"}, booked["2025-08-30"])
}

func TestTwoPendingBookingsOnOneSlot(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	ctx := context.Background()

	alice := newLoggedInSession(t, api, "alice@example.com")
	bob := newLoggedInSession(t, api, "bob@example.com")

	require.NoError(t, alice.SelectSlot("2025-08-30", "18:30"))
	_, err := alice.Reserve(ctx)
	require.NoError(t, err)

	// pending claims do not block the slot, so bob can reserve it too
	require.NoError(t, bob.SelectSlot("2025-08-30", "18:30"))
	_, err = bob.Reserve(ctx)
	require.NoError(t, err)

	assert.Empty(t, alice.Booked["2025-08-30"])
	assert.Empty(t, bob.Booked["2025-08-30"])
}

func TestSelectSlotGuards(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	ctx := context.Background()

	anonymous := NewSession(api)
	assert.ErrorIs(t, anonymous.SelectSlot("2025-08-30", "18:30"), ErrNotLoggedIn)

	session := newLoggedInSession(t, api, "alice@example.com")

	assert.ErrorIs(t, session.SelectSlot("2025-08-30", "18:00"), ErrSlotUnavailable)
	assert.ErrorIs(t, session.SelectSlot("30-08-2025", "18:30"), ErrSlotUnavailable)

	require.NoError(t, session.SelectSlot("2025-08-30", "18:30"))
	require.NoError(t, session.StartPayment())
	_, err := session.ConfirmPayment(ctx)
	require.NoError(t, err)

	// the cache now blocks the taken slot
	assert.ErrorIs(t, session.SelectSlot("2025-08-30", "18:30"), ErrSlotUnavailable)
}

func TestReserveWithoutSelection(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	session := newLoggedInSession(t, api, "alice@example.com")

	_, err := session.Reserve(context.Background())
	assert.ErrorIs(t, err, ErrNoSlotSelected)

	_, err = session.ConfirmPayment(context.Background())
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestConfirmMissingBooking(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	session := newLoggedInSession(t, api, "alice@example.com")

	session.StartPaymentFor(models.Booking{ID: 999, UserID: session.User.ID, Date: "2025-08-30", Time: "18:30"})

	_, err := session.ConfirmPayment(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "booking not found", apiErr.Message)
}

func TestLoginRestoresSession(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	ctx := context.Background()

	session := newLoggedInSession(t, api, "alice@example.com")
	require.NoError(t, session.SelectSlot("2025-08-30", "18:30"))
	_, err := session.Reserve(ctx)
	require.NoError(t, err)

	session.LogOut()
	assert.Zero(t, session.User.ID)
	assert.Empty(t, session.MyGames)

	require.NoError(t, session.LogIn(ctx, "alice@example.com", "s3cret"))
	assert.NotEmpty(t, session.Token)
	require.Len(t, session.MyGames, 1)
	assert.Equal(t, models.StatusPending, session.MyGames[0].Status)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	newLoggedInSession(t, api, "alice@example.com")

	session := NewSession(api)
	err := session.LogIn(context.Background(), "alice@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	newLoggedInSession(t, api, "alice@example.com")

	session := NewSession(api)
	err := session.Register(context.Background(), "Alice Again", "alice@example.com", "", "other")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
}

func TestAvailableTimesFullDay(t *testing.T) {
	t.Parallel()

	api, _ := newTestServer(t)
	session := newLoggedInSession(t, api, "alice@example.com")

	free := session.AvailableTimes("2025-08-30")
	assert.Len(t, free, 10)
}
