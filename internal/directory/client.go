// Package directory предоставляет клиент для удалённого справочника пользователей.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopline/order-system/internal/model"
)

// DefaultTimeout ограничивает время одного обращения к справочнику.
// Клиент не выполняет повторных попыток: один быстрый отказ переводит
// вызывающую сторону на профиль-заглушку.
const DefaultTimeout = 2 * time.Second

// Client инкапсулирует HTTP-взаимодействие со справочником пользователей.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт HTTP-клиент справочника по указанному адресу.
// Нулевой timeout заменяется значением DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) get(ctx context.Context, path string) (*model.User, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("directory client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &user, nil
}

// GetUserByID запрашивает профиль пользователя по идентификатору.
func (c *Client) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10))
}

// GetUserByEmail запрашивает профиль пользователя по адресу электронной почты.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return c.get(ctx, "/api/users/email/"+url.PathEscape(email))
}
