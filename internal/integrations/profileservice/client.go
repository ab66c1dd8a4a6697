package profileservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ProfileService
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProfileService.
// timeout bounds identity resolution on session establishment; when it
// expires the caller gets ErrResolutionTimeout instead of hanging.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ResolveProfile получает профиль пользователя по ID
func (c *Client) ResolveProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/profiles/%s", c.baseURL, userID)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Таймаут резолва - отдельная, ретраебельная ошибка
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			c.log.Warn("ResolveProfile: timed out after %s for user=%s", c.timeout, userID)
			return nil, fmt.Errorf("%w: user=%s", ErrResolutionTimeout, userID)
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}
