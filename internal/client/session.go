package client

import (
	"context"
	"errors"

	"courtBooker/internal/catalog"
	"courtBooker/internal/models"
)

// Static PIX display data of the court. Shown to the user on the payment
// step; there is no payment-provider integration behind it.
const (
	Price   = "R$ 2,00"
	PixCode = "00020126360014br.gov.bcb.pix0114+5511999999999520400005303986540490.005802BR5913NOME DO DONO6008BRASILIA62070503***6304E4A7"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoSlotSelected  = errors.New("no slot selected")
	ErrNothingToPay    = errors.New("no booking selected for payment")
	ErrSlotUnavailable = errors.New("slot is not available")
)

type Slot struct {
	Date string
	Time string
}

// Session holds the booking flow state of one user: the signed-in identity,
// the slot currently selected on the calendar, the booking handed off to the
// payment step, and two caches (the user's own bookings and the global
// confirmed-slot map).
//
// Consistency contract: after every mutating call the session re-fetches both
// caches in full from the server. There is no incremental update; the
// re-fetch is the only mechanism keeping the session consistent with the
// store.
type Session struct {
	api *Client

	User     models.User
	Token    string
	Selected *Slot
	// ToPay is the booking handed to the payment step. A zero ID means the
	// booking does not exist yet and will be created as confirmed on payment.
	ToPay *models.Booking

	MyGames []models.Booking
	Booked  map[string][]string
}

func NewSession(api *Client) *Session {
	return &Session{api: api}
}

func (s *Session) Register(ctx context.Context, name, email, phone, password string) error {
	user, err := s.api.Register(ctx, name, email, phone, password)
	if err != nil {
		return err
	}

	s.User = user

	return s.refresh(ctx)
}

func (s *Session) LogIn(ctx context.Context, email, password string) error {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.User = user
	s.Token = token

	return s.refresh(ctx)
}

func (s *Session) LogOut() {
	*s = Session{api: s.api}
}

// AvailableTimes filters the daily schedule against the confirmed-slot cache.
// Pending bookings do not occupy a slot, so they never hide a time here.
func (s *Session) AvailableTimes(date string) []string {
	taken := s.Booked[date]

	var free []string
	for _, t := range catalog.Times {
		occupied := false
		for _, busy := range taken {
			if t == busy {
				occupied = true
				break
			}
		}
		if !occupied {
			free = append(free, t)
		}
	}

	return free
}

func (s *Session) SelectSlot(date, gameTime string) error {
	if s.User.ID == 0 {
		return ErrNotLoggedIn
	}

	if !catalog.ValidDate(date) || !catalog.ValidTime(gameTime) {
		return ErrSlotUnavailable
	}

	for _, busy := range s.Booked[date] {
		if gameTime == busy {
			return ErrSlotUnavailable
		}
	}

	s.Selected = &Slot{Date: date, Time: gameTime}

	return nil
}

// Reserve books the selected slot with pending status (reserve now, pay
// later) and clears the selection.
func (s *Session) Reserve(ctx context.Context) (models.Booking, error) {
	if s.User.ID == 0 {
		return models.Booking{}, ErrNotLoggedIn
	}
	if s.Selected == nil {
		return models.Booking{}, ErrNoSlotSelected
	}

	booking, err := s.api.CreateBooking(ctx, s.User.ID, s.Selected.Date, s.Selected.Time, models.StatusPending)
	if err != nil {
		return models.Booking{}, err
	}

	s.Selected = nil

	if err := s.refresh(ctx); err != nil {
		return booking, err
	}

	return booking, nil
}

// StartPayment hands the selected, not yet persisted slot to the payment
// step (the pay-now path).
func (s *Session) StartPayment() error {
	if s.Selected == nil {
		return ErrNoSlotSelected
	}

	s.ToPay = &models.Booking{
		UserID: s.User.ID,
		Date:   s.Selected.Date,
		Time:   s.Selected.Time,
	}

	return nil
}

// StartPaymentFor hands an existing pending booking (from the user's booking
// list) to the payment step.
func (s *Session) StartPaymentFor(booking models.Booking) {
	s.ToPay = &booking
}

// ConfirmPayment finalizes the payment step. A booking without an ID is
// created directly as confirmed, skipping pending; an existing one is moved
// pending -> confirmed. Either way both caches are re-fetched afterwards.
func (s *Session) ConfirmPayment(ctx context.Context) (models.Booking, error) {
	if s.ToPay == nil {
		return models.Booking{}, ErrNothingToPay
	}

	var (
		booking models.Booking
		err     error
	)

	if s.ToPay.ID == 0 {
		booking, err = s.api.CreateBooking(ctx, s.User.ID, s.ToPay.Date, s.ToPay.Time, models.StatusConfirmed)
	} else {
		booking, err = s.api.ConfirmBooking(ctx, s.ToPay.ID)
	}
	if err != nil {
		return models.Booking{}, err
	}

	s.ToPay = nil
	s.Selected = nil

	if err := s.refresh(ctx); err != nil {
		return booking, err
	}

	return booking, nil
}

func (s *Session) refresh(ctx context.Context) error {
	games, err := s.api.MyGames(ctx, s.User.ID)
	if err != nil {
		return err
	}

	booked, err := s.api.BookedSlots(ctx)
	if err != nil {
		return err
	}

	s.MyGames = games
	s.Booked = booked

	return nil
}
