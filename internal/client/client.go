package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	dto "scratchcard/internal/api/dto/card"
	"scratchcard/internal/converter"
	"scratchcard/internal/model"
	"scratchcard/pkg/req"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusError ответ сервера с кодом не 2xx
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scratch api: status %d: %s", e.Code, e.Body)
}

// Client ходит в API карт от имени пользователя с bearer токеном
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListCards(ctx context.Context) ([]model.ScratchCard, error) {
	body, err := do[dto.ListResponse](ctx, c, http.MethodGet, "/cards")
	if err != nil {
		return nil, err
	}
	return converter.FromListResponse(body)
}

func (c *Client) CommitScratch(ctx context.Context, cardID uuid.UUID) (*model.CommitResult, error) {
	body, err := do[dto.CommitResponse](ctx, c, http.MethodPost, "/cards/"+cardID.String()+"/scratch")
	if err != nil {
		return nil, err
	}
	return converter.FromCommitResponse(body)
}

func (c *Client) FetchFillerMessage(ctx context.Context) (*model.FillerMessage, error) {
	return c.FetchFillerMessageIn(ctx, "")
}

// FetchFillerMessageIn то же, но из заданной категории
func (c *Client) FetchFillerMessageIn(ctx context.Context, category string) (*model.FillerMessage, error) {
	path := "/filler-message"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	body, err := do[dto.FillerResponse](ctx, c, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return converter.FromFillerResponse(body), nil
}

func do[T any](ctx context.Context, c *Client, method, path string) (T, error) {
	var zero T

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return zero, err
	}
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(r)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return zero, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	return req.Decode[T](res.Body)
}
