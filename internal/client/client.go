package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"courtBooker/internal/models"
)

// APIError carries the server's error message as-is along with the HTTP
// status it arrived with.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type bookingRequest struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

func (c *Client) Register(ctx context.Context, name, email, phone, password string) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}

	err := c.do(ctx, http.MethodPost, "/register",
		registerRequest{Name: name, Email: email, Phone: phone, Password: password}, &resp)
	if err != nil {
		return models.User{}, err
	}

	return resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (models.User, string, error) {
	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}

	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.User{}, "", err
	}

	return resp.User, resp.Token, nil
}

func (c *Client) BookedSlots(ctx context.Context) (map[string][]string, error) {
	var resp struct {
		Schedules map[string][]string `json:"schedules"`
	}

	if err := c.do(ctx, http.MethodGet, "/schedules", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Schedules, nil
}

func (c *Client) MyGames(ctx context.Context, userID int64) ([]models.Booking, error) {
	var resp struct {
		Games []models.Booking `json:"games"`
	}

	path := fmt.Sprintf("/my-games/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Games, nil
}

func (c *Client) CreateBooking(ctx context.Context, userID int64, date, gameTime, status string) (models.Booking, error) {
	var resp struct {
		Booking models.Booking `json:"booking"`
	}

	err := c.do(ctx, http.MethodPost, "/schedules",
		bookingRequest{UserID: userID, Date: date, Time: gameTime, Status: status}, &resp)
	if err != nil {
		return models.Booking{}, err
	}

	return resp.Booking, nil
}

func (c *Client) ConfirmBooking(ctx context.Context, id int64) (models.Booking, error) {
	var resp struct {
		Booking models.Booking `json:"booking"`
	}

	path := fmt.Sprintf("/schedules/%d/confirm", id)
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return models.Booking{}, err
	}

	return resp.Booking, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiResp)

		msg := apiResp.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}

		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
