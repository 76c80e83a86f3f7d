package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/config"
	"github.com/timeplan/timeplan/internal/utils"
	"golang.org/x/oauth2/clientcredentials"
)

// TrackedDay is one day of activity as reported by the tracker.
type TrackedDay struct {
	Date          string `json:"date"`
	ActiveSeconds int64  `json:"activeSeconds"`
}

type Client interface {
	GetDailyActivity(ctx context.Context, trackerUserId string, from time.Time, to time.Time) ([]TrackedDay, error) // GET /v1/users/{id}/activity/daily
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client authenticating with the OAuth2 client credentials flow.
// Tokens are fetched and refreshed by the returned http.Client.
func NewClient(cfg config.Activity) *ClientImpl {
	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenUrl,
	}
	return newClientWithHTTP(cfg.BaseUrl, credentials.Client(context.Background()))
}

func newClientWithHTTP(baseURL string, httpClient *http.Client) *ClientImpl {
	return &ClientImpl{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *ClientImpl) GetDailyActivity(ctx context.Context, trackerUserId string, from time.Time, to time.Time) ([]TrackedDay, error) {
	query := url.Values{}
	query.Set("from", utils.FormatDate(from))
	query.Set("to", utils.FormatDate(to))
	endpoint := fmt.Sprintf("%s/v1/users/%s/activity/daily?%s", c.baseURL, url.PathEscape(trackerUserId), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("activity tracker API returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var response struct {
		Days []TrackedDay `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}
	log.Tracef("Activity tracker returned %d days for %s", len(response.Days), trackerUserId)
	return response.Days, nil
}
