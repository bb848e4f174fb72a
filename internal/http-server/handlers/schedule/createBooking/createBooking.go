package createBooking

import (
	"errors"
	"log/slog"
	"net/http"

	"courtBooker/internal/catalog"
	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type BookingRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending confirmed"`
}

type BookingResponse struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(userID int64, date, gameTime, status string) (models.Booking, error)
}

func New(log *slog.Logger, booking BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.createBooking.New"

		log = log.With(slog.String("op", op))

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if !catalog.ValidDate(req.Date) {
			log.Error("invalid date format", slog.String("date", req.Date))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date format"))
			return
		}

		if !catalog.ValidTime(req.Time) {
			log.Error("time is not in the schedule", slog.String("time", req.Time))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("time is not in the schedule"))
			return
		}

		created, err := booking.CreateBooking(req.UserID, req.Date, req.Time, req.Status)
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))

			if errors.Is(err, storage.ErrSlotTaken) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("this slot is already booked"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created",
			slog.Int64("booking_id", created.ID),
			slog.String("status", created.Status),
		)

		render.Status(r, http.StatusCreated)
		responseOK(w, r, created)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking models.Booking) {
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
