package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"event-inbox/internal/database"
	"event-inbox/internal/workers"
)

// Client represents an HTTP client for the event inbox API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			// Launches run synchronously on the server and can be slow.
			Timeout: 10 * time.Minute,
		},
	}
}

// APIError represents an error from the API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// doRequest performs an HTTP request and handles errors
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()

		var serverErr struct {
			Error string `json:"error"`
		}
		apiErr := &APIError{Code: resp.StatusCode, Message: resp.Status}
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Error != "" {
			apiErr.Message = serverErr.Error
		}
		return nil, apiErr
	}

	return resp, nil
}

func (c *Client) getJSON(path string, into interface{}) error {
	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// HealthCheck checks if the API server is healthy
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// Launch triggers one inbox scan and returns its summary
func (c *Client) Launch() (*workers.LaunchSummary, error) {
	resp, err := c.doRequest("POST", "/api/launch", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summary workers.LaunchSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &summary, nil
}

// GetLaunches returns recent scan runs
func (c *Client) GetLaunches() ([]database.Launch, error) {
	var launches []database.Launch
	if err := c.getJSON("/api/launches", &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

// GetEmails returns all processed emails
func (c *Client) GetEmails() ([]database.Email, error) {
	var emails []database.Email
	if err := c.getJSON("/api/emails", &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// GetSuggestedEvents returns suggested events, optionally filtered by status
func (c *Client) GetSuggestedEvents(status string) ([]database.SuggestedEvent, error) {
	path := "/api/suggested-events"
	if status != "" {
		path += "?status=" + status
	}
	var events []database.SuggestedEvent
	if err := c.getJSON(path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetSuggestedEvent returns one suggested event
func (c *Client) GetSuggestedEvent(id int) (*database.SuggestedEvent, error) {
	var event database.SuggestedEvent
	if err := c.getJSON(fmt.Sprintf("/api/suggested-events/%d", id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// AcceptEvent accepts one suggested event and returns the saved event
func (c *Client) AcceptEvent(id int) (*database.SavedEvent, error) {
	resp, err := c.doRequest("POST", fmt.Sprintf("/api/suggested-events/%d/accept", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var saved database.SavedEvent
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &saved, nil
}

// RejectEvent rejects one suggested event
func (c *Client) RejectEvent(id int) error {
	resp, err := c.doRequest("POST", fmt.Sprintf("/api/suggested-events/%d/reject", id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// BulkAccept accepts a batch of suggested events all-or-nothing
func (c *Client) BulkAccept(ids []int) ([]database.SavedEvent, error) {
	resp, err := c.doRequest("POST", "/api/suggested-events/bulk-accept", map[string][]int{"ids": ids})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var saved []database.SavedEvent
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return saved, nil
}

// BulkReject rejects a batch of suggested events all-or-nothing
func (c *Client) BulkReject(ids []int) error {
	resp, err := c.doRequest("POST", "/api/suggested-events/bulk-reject", map[string][]int{"ids": ids})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteEvent removes a suggested event
func (c *Client) DeleteEvent(id int) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/suggested-events/%d", id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// SyncResult reports a completed calendar push
type SyncResult struct {
	CalendarEventID string `json:"calendar_event_id"`
	HTMLLink        string `json:"html_link,omitempty"`
}

// SyncEvent pushes a saved event to the configured calendar
func (c *Client) SyncEvent(id int) (*SyncResult, error) {
	resp, err := c.doRequest("POST", fmt.Sprintf("/api/saved-events/%d/sync", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SyncResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// GetSavedEvents returns the scheduled events
func (c *Client) GetSavedEvents() ([]database.SavedEvent, error) {
	var events []database.SavedEvent
	if err := c.getJSON("/api/saved-events", &events); err != nil {
		return nil, err
	}
	return events, nil
}
