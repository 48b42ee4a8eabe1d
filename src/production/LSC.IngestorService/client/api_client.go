package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIClient forwards collar readings to the API service. Requests are never retried.
type APIClient struct {
	http *resty.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "collar-ingestor-service")
	return &APIClient{http: http}
}

// LoadDataRequest is the /api/load-data body
type LoadDataRequest struct {
	ID          string  `json:"id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Wind        float64 `json:"wind"`
	Clouds      float64 `json:"clouds"`
	Condition   string  `json:"condition"`
	THI         float64 `json:"thi"`
	Activity    string  `json:"activity"`
	Welfare     string  `json:"welfare"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StatusError is a non-2xx answer from the API service
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
}

// SubmitReading posts one reading
func (c *APIClient) SubmitReading(ctx context.Context, reading LoadDataRequest) error {
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reading).
		SetError(&failure).
		Post("/api/load-data")
	if err != nil {
		return fmt.Errorf("failed to submit reading: %w", err)
	}

	if resp.IsError() {
		return &StatusError{StatusCode: resp.StatusCode(), Code: failure.Code, Message: failure.Error}
	}
	return nil
}

// Health checks if the API Service is healthy
func (c *APIClient) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health/live")
	if err != nil {
		return fmt.Errorf("failed to check API health: %w", err)
	}
	if resp.IsError() {
		return &StatusError{StatusCode: resp.StatusCode()}
	}
	return nil
}
