package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bcardapp/bcard/internal/client/models"
)

// maxResponseBody caps how much of an error body is read for a message.
const maxResponseBody = 1 << 20

// HTTPClient implements Client over plain net/http against the BCard REST
// service. A single bearer token, once set, is attached to every request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewHTTPClient creates a gateway bound to baseURL. The timeout applies to
// each individual request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the default bearer credential. Setting a new token
// replaces any prior value.
func (c *HTTPClient) SetToken(token string) { c.token = token }

// ClearToken removes the default bearer credential.
func (c *HTTPClient) ClearToken() { c.token = "" }

// request performs one HTTP exchange and returns the raw success body.
func (c *HTTPClient) request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "server unreachable", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "reading response failed", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, data)
	}
	return data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	data, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classify maps a non-2xx response to a tagged error, preferring the
// server-supplied message when the body carries one.
func classify(status int, body []byte) *Error {
	var kind Kind
	switch {
	case status == http.StatusBadRequest:
		kind = KindBadRequest
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500:
		kind = KindClient
	default:
		kind = KindServer
	}
	return &Error{Kind: kind, Status: status, Message: serverMessage(body, kind)}
}

func serverMessage(body []byte, kind Kind) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && !strings.HasPrefix(msg, "{") && !strings.HasPrefix(msg, "<") {
		return msg
	}
	return "request failed: " + kind.String()
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Login exchanges credentials for a signed bearer token. The service replies
// with the bare token, either as plain text or as a JSON-encoded string.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.request(ctx, http.MethodPost, "/users/login", body)
	if err != nil {
		return "", err
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		token = strings.TrimSpace(string(data))
	}
	if token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return token, nil
}

func (c *HTTPClient) Cards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := c.do(ctx, http.MethodGet, "/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *HTTPClient) Card(ctx context.Context, id string) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodGet, "/cards/"+id, nil, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *HTTPClient) MyCards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := c.do(ctx, http.MethodGet, "/cards/my-cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *HTTPClient) CreateCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPost, "/cards", in, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *HTTPClient) UpdateCard(ctx context.Context, id string, in models.CardInput) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPut, "/cards/"+id, in, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *HTTPClient) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+id, nil, nil)
}

// ToggleLike flips the signed-in user's membership in the card's likes set
// and returns the card as the server now sees it.
func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPatch, "/cards/"+id, struct{}{}, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) User(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ToggleBusiness flips the business flag on a user record (admin only).
func (c *HTTPClient) ToggleBusiness(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, struct{}{}, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}
