package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const distanceMatrixPath = "/maps/api/distancematrix/json"

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Distance Matrix API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// TravelDuration возвращает время в пути на машине от origin до destination при выезде в departure
// Предпочитает оценку с учетом трафика, если API её вернул
func (c *Client) TravelDuration(ctx context.Context, origin, destination string, departure time.Time) (*Duration, error) {
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("units", "imperial")
	q.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+distanceMatrixPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: upstream status %d", ErrInternal, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dm DistanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&dm); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return c.extractDuration(&dm)
}

func (c *Client) extractDuration(dm *DistanceMatrixResponse) (*Duration, error) {
	switch dm.Status {
	case "OK":
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, fmt.Errorf("%w: %s %s", ErrRequestDenied, dm.Status, dm.ErrorMessage)
	default:
		return nil, fmt.Errorf("%w: status %s %s", ErrInvalidResponse, dm.Status, dm.ErrorMessage)
	}

	if len(dm.Rows) == 0 || len(dm.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidResponse)
	}

	el := dm.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, fmt.Errorf("%w: element status %s", ErrNoRoute, el.Status)
	}

	tv := el.DurationInTraffic
	if tv == nil {
		tv = el.Duration
	}
	if tv == nil {
		return nil, fmt.Errorf("%w: no duration in element", ErrInvalidResponse)
	}

	minutes, err := ParseDurationText(tv.Text)
	if err != nil {
		// Текст не разобрали - используем значение в секундах, округляя вверх
		c.log.Warn("TravelDuration: unparsable duration text %q, using value=%ds", tv.Text, tv.Value)
		minutes = int((tv.Value + 59) / 60)
	}

	return &Duration{Text: tv.Text, Minutes: minutes}, nil
}
