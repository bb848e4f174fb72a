package registerUser

import (
	"errors"
	"log/slog"
	"net/http"

	"courtBooker/internal/lib/api/response"
	"courtBooker/internal/lib/logger/sl"
	"courtBooker/internal/models"
	"courtBooker/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	response.Response
	User models.User `json:"user"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserCreator
type UserCreator interface {
	CreateUser(name, email, phone, passwordHash string) (models.User, error)
}

func New(log *slog.Logger, users UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.registerUser.New"

		log = log.With(slog.String("op", op))

		var req RegisterRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.String("email", req.Email))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		user, err := users.CreateUser(req.Name, req.Email, req.Phone, string(hash))
		if err != nil {
			log.Error("failed to create user", sl.Err(err))

			if errors.Is(err, storage.ErrEmailTaken) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("this email is already in use"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
			return
		}

		log.Info("user registered", slog.Int64("user_id", user.ID))

		render.Status(r, http.StatusCreated)
		responseOK(w, r, user)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, user models.User) {
	render.JSON(w, r, RegisterResponse{
		Response: response.OK(),
		User:     user,
	})
}
