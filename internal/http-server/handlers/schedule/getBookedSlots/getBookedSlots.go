package getBookedSlots

import (
	"log/slog"
	"net/http"

	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

type SlotsResponse struct {
	response.Response
	Schedules map[string][]string `json:"schedules"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SlotsGetter
type SlotsGetter interface {
	BookedSlots() (map[string][]string, error)
}

func New(log *slog.Logger, slots SlotsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.getBookedSlots.New"

		log = log.With(slog.String("op", op))

		booked, err := slots.BookedSlots()
		if err != nil {
			log.Error("failed to get booked slots", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get booked slots"))
			return
		}

		log.Info("booked slots retrieved", slog.Int("dates", len(booked)))

		responseOK(w, r, booked)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booked map[string][]string) {
	if booked == nil {
		booked = map[string][]string{}
	}

	render.JSON(w, r, SlotsResponse{
		Response:  response.OK(),
		Schedules: booked,
	})
}
