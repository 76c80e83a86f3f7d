package activity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeplan/timeplan/internal/config"
)

func TestClientImpl_GetDailyActivity(t *testing.T) {
	t.Run("should authenticate with client credentials and decode days", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"token-123","token_type":"bearer","expires_in":3600}`))
		})
		mux.HandleFunc("/v1/users/tracker-7/activity/daily", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			assert.Equal(t, "2025-06-09", r.URL.Query().Get("from"))
			assert.Equal(t, "2025-06-13", r.URL.Query().Get("to"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"days": []TrackedDay{
					{Date: "2025-06-09", ActiveSeconds: 27000},
					{Date: "2025-06-10", ActiveSeconds: 28800},
				},
			})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewClient(config.Activity{
			Enabled:      true,
			BaseUrl:      server.URL + "/",
			ClientId:     "timeplan",
			ClientSecret: "secret",
			TokenUrl:     server.URL + "/oauth/token",
		})

		days, err := client.GetDailyActivity(context.Background(), "tracker-7", june(9), june(13))

		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, TrackedDay{Date: "2025-06-09", ActiveSeconds: 27000}, days[0])
	})

	t.Run("should fail on non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		client := newClientWithHTTP(server.URL, server.Client())

		_, err := client.GetDailyActivity(context.Background(), "tracker-7", june(9), june(13))

		assert.ErrorContains(t, err, "502")
	})
}
