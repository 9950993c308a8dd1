package staffservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
)

// Client клиент справочника мастеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника мастеров
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tracing.Transport(nil),
		},
		log: log,
	}
}

// GetStylist получает мастера по id
func (c *Client) GetStylist(ctx context.Context, stylistID string) (*Stylist, error) {
	endpoint := fmt.Sprintf("%s/internal/stylists/%s", c.baseURL, url.PathEscape(stylistID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrStylistNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var stylist Stylist
	if err := json.NewDecoder(resp.Body).Decode(&stylist); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &stylist, nil
}

// GetStylistNameWithGracefulDegradation возвращает имя мастера.
// При недоступности справочника возвращает ErrServiceDegraded, и вызывающий показывает id.
func (c *Client) GetStylistNameWithGracefulDegradation(ctx context.Context, stylistID string) (string, error) {
	stylist, err := c.GetStylist(ctx, stylistID)
	if err != nil {
		if errors.Is(err, ErrStylistNotFound) {
			c.log.Warn("Stylist not found in staff directory: stylist_id=%s", stylistID)
			return "", err
		}

		c.log.Error("StaffService unavailable, applying graceful degradation for stylist_id=%s: %v", stylistID, err)
		return "", fmt.Errorf("%w: stylist_id=%s, error=%v", ErrServiceDegraded, stylistID, err)
	}

	return stylist.Name, nil
}
