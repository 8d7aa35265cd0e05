package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wanderlog/expenseclient/internal/logger"
	"github.com/wanderlog/expenseclient/internal/storage"
)

// DefaultTimeout bounds every request against the real service.
const DefaultTimeout = 10 * time.Second

// Client binds the service operations to the remote HTTP API. It implements
// both ExpenseService and AuthService; the authorization header is attached
// whenever the credential source holds a token.
type Client struct {
	baseURL        string
	http           *http.Client
	creds          CredentialSource
	onUnauthorized func()
	logger         *logger.Logger
}

var (
	_ ExpenseService = (*Client)(nil)
	_ AuthService    = (*Client)(nil)
)

// NewClient builds the HTTP binding. onUnauthorized fires once per 401
// response, after which the caller is expected to drop its credential and
// return to the unauthenticated state.
func NewClient(
	baseURL string,
	timeout time.Duration,
	creds CredentialSource,
	onUnauthorized func(),
	log *logger.Logger,
) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:        baseURL,
		http:           &http.Client{Timeout: timeout},
		creds:          creds,
		onUnauthorized: onUnauthorized,
		logger:         log,
	}
}

type expensePayload struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Note          string  `json:"note"`
	UserID        int64   `json:"user_id"`
	IsDeleted     bool    `json:"is_deleted"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type userPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type messagePayload struct {
	Message string `json:"message"`
}

type loginPayload struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        userPayload `json:"user"`
}

func (c *Client) PublicExpenses(ctx context.Context) ([]storage.Expense, error) {
	var payload []expensePayload
	if err := c.do(ctx, http.MethodGet, "/api/expenses/public", nil, &payload); err != nil {
		return nil, err
	}
	return expensesFromPayload(payload), nil
}

func (c *Client) PersonalExpenses(ctx context.Context) ([]storage.Expense, error) {
	var payload []expensePayload
	if err := c.do(ctx, http.MethodGet, "/api/expenses/", nil, &payload); err != nil {
		return nil, err
	}
	return expensesFromPayload(payload), nil
}

func (c *Client) Create(ctx context.Context, input storage.ExpenseInput) (storage.Expense, error) {
	body := map[string]any{
		"date":          input.Date,
		"category":      input.Category,
		"amount":        input.Amount,
		"paymentMethod": input.PaymentMethod,
		"note":          input.Note,
	}

	var payload expensePayload
	if err := c.do(ctx, http.MethodPost, "/api/expenses/", body, &payload); err != nil {
		return nil, err
	}
	return expenseFromPayload(payload), nil
}

func (c *Client) Update(ctx context.Context, id int64, update storage.ExpenseUpdate) (storage.Expense, error) {
	// Only supplied fields travel; the service preserves the rest.
	body := map[string]any{}
	if update.Date != nil {
		body["date"] = *update.Date
	}
	if update.Category != nil {
		body["category"] = *update.Category
	}
	if update.Amount != nil {
		body["amount"] = *update.Amount
	}
	if update.PaymentMethod != nil {
		body["paymentMethod"] = *update.PaymentMethod
	}
	if update.Note != nil {
		body["note"] = *update.Note
	}

	var payload expensePayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), body, &payload); err != nil {
		return nil, err
	}
	return expenseFromPayload(payload), nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), nil, nil)
}

func (c *Client) RequestVerification(ctx context.Context, email string) (string, error) {
	var payload messagePayload
	err := c.do(ctx, http.MethodPost, "/api/auth/request-verification", map[string]string{"email": email}, &payload)
	if err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (c *Client) VerifyCode(ctx context.Context, email, code string) (LoginResult, error) {
	var payload loginPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/verify-code", map[string]string{
		"email": email,
		"code":  code,
	}, &payload)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Credential: Credential{Token: payload.AccessToken, TokenType: payload.TokenType},
		User:       userFromPayload(payload.User),
	}, nil
}

func (c *Client) CurrentUser(ctx context.Context) (storage.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	return userFromPayload(payload), nil
}

func (c *Client) RefreshToken(ctx context.Context) (Credential, error) {
	var payload loginPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, &payload); err != nil {
		return Credential{}, err
	}
	return Credential{Token: payload.AccessToken, TokenType: payload.TokenType}, nil
}

func (c *Client) Logout(ctx context.Context) (string, error) {
	var payload messagePayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: "failed to build request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Session invalidation is global: the stored credential is gone no
		// matter which operation tripped it.
		c.logger.Warn("Unauthorized response, clearing session", "method", method, "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Message: "authentication required", Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return &storage.NotFoundError{}
	case resp.StatusCode >= http.StatusBadRequest:
		return &Error{Message: errorMessage(resp.Body), Status: resp.StatusCode}
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Message: "failed to decode response", Err: err}
		}
	}

	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "request failed"
}

func expensesFromPayload(payload []expensePayload) []storage.Expense {
	expenses := make([]storage.Expense, 0, len(payload))
	for _, p := range payload {
		expenses = append(expenses, expenseFromPayload(p))
	}
	return expenses
}

func expenseFromPayload(p expensePayload) storage.Expense {
	return storage.NewExpense(
		p.ID,
		p.Date,
		p.Category,
		p.PaymentMethod,
		p.Note,
		p.Amount,
		p.UserID,
		p.IsDeleted,
		parseTimestamp(p.CreatedAt),
		parseTimestamp(p.UpdatedAt),
	)
}

func userFromPayload(p userPayload) storage.User {
	return storage.NewUser(p.ID, p.Email, p.Name, parseTimestamp(p.CreatedAt))
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
