package confirmBooking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingResponse struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingConfirmer
type BookingConfirmer interface {
	ConfirmBooking(id int64) (models.Booking, error)
}

func New(log *slog.Logger, booking BookingConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.confirmBooking.New"

		log = log.With(slog.String("op", op))

		gameIdStr := chi.URLParam(r, "gameId")
		if gameIdStr == "" {
			log.Error("game id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("game id is required"))
			return
		}

		gameID, err := strconv.ParseInt(gameIdStr, 10, 64)
		if err != nil {
			log.Error("invalid game id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid game id format"))
			return
		}

		log = log.With(slog.Int64("game_id", gameID))

		confirmed, err := booking.ConfirmBooking(gameID)
		if err != nil {
			log.Error("failed to confirm booking", sl.Err(err))

			if errors.Is(err, storage.ErrBookingNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to confirm booking"))
			return
		}

		log.Info("booking confirmed", slog.Int64("user_id", confirmed.UserID))

		responseOK(w, r, confirmed)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking models.Booking) {
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
