package getMyGames

import (
	"log/slog"
	"net/http"
	"strconv"

	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type GamesResponse struct {
	response.Response
	Games []models.Booking `json:"games"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=GamesGetter
type GamesGetter interface {
	UserBookings(userID int64) ([]models.Booking, error)
}

func New(log *slog.Logger, games GamesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.getMyGames.New"

		log = log.With(slog.String("op", op))

		userIdStr := chi.URLParam(r, "userId")
		if userIdStr == "" {
			log.Error("user id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		userID, err := strconv.ParseInt(userIdStr, 10, 64)
		if err != nil {
			log.Error("invalid user id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id format"))
			return
		}

		log = log.With(slog.Int64("user_id", userID))

		bookings, err := games.UserBookings(userID)
		if err != nil {
			log.Error("failed to get user bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get user bookings"))
			return
		}

		log.Info("user bookings retrieved", slog.Int("count", len(bookings)))

		responseOK(w, r, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookings []models.Booking) {
	if bookings == nil {
		bookings = []models.Booking{}
	}

	render.JSON(w, r, GamesResponse{
		Response: response.OK(),
		Games:    bookings,
	})
}
