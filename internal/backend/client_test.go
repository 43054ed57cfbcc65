package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "access_token", 5*time.Second)
}

func TestClient_SearchBusinesses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses", r.URL.Path)
		assert.Equal(t, "Restaurants in New Jersey", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"businesses":[{"id":"1","displayName":"Joe's Diner","formattedAddress":"123 Main St","rating":4.5,"userRatingCount":120}],"count":1}`))
	})

	resp, err := client.SearchBusinesses(context.Background(), "", "Restaurants in New Jersey")
	require.NoError(t, err)
	require.Len(t, resp.Businesses, 1)
	assert.Equal(t, "1", resp.Businesses[0].ID)
	assert.Equal(t, "Joe's Diner", string(resp.Businesses[0].DisplayName))
}

func TestClient_SearchBusinesses_MissingList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	resp, err := client.SearchBusinesses(context.Background(), "", "anything")
	require.NoError(t, err)
	assert.NotNil(t, resp.Businesses)
	assert.Empty(t, resp.Businesses)
}

func TestClient_ForwardsSessionCookie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access_token")
		require.NoError(t, err)
		assert.Equal(t, "tok-123", cookie.Value)
		w.Write([]byte(`{"id":"u1","name":"Ada","email":"ada@example.com"}`))
	})

	user, err := client.CurrentUser(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}

func TestClient_CurrentUser_Unauthorized(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	})

	_, err := client.CurrentUser(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = client.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, calls, "no request without a token")
}

func TestClient_PathParams(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		expected string
	}{
		{
			name: "Business detail",
			call: func(c *Client) error {
				_, err := c.GetBusiness(context.Background(), "", "ChIJ123")
				return err
			},
			expected: "/businesses/ChIJ123",
		},
		{
			name: "Score",
			call: func(c *Client) error {
				_, err := c.GetSEOScore(context.Background(), "", "ChIJ123")
				return err
			},
			expected: "/businesses/score/ChIJ123",
		},
		{
			name: "Summary",
			call: func(c *Client) error {
				_, err := c.GetSummary(context.Background(), "", "ChIJ123")
				return err
			},
			expected: "/businesses/summary/ChIJ123",
		},
		{
			name: "Website audit",
			call: func(c *Client) error {
				_, err := c.GetWebsiteAudit(context.Background(), "", "ChIJ123")
				return err
			},
			expected: "/businesses/web-analytics/ChIJ123",
		},
		{
			name: "Trends are keyed by encoded name",
			call: func(c *Client) error {
				_, err := c.GetTrends(context.Background(), "", "Joe's Diner & Grill")
				return err
			},
			expected: "/businesses/trends/Joe's Diner & Grill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`72`))
			})
			// only the path matters here; decode errors for non-score shapes are fine
			_ = tt.call(client)
			assert.Equal(t, tt.expected, gotPath)
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})

	_, err := client.GetSEOScore(context.Background(), "", "1")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "boom", statusErr.Body)
	assert.Equal(t, "Failed to fetch overall score (status 500)", err.Error())
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_TupleMissIsStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[404, "Business not found"]`))
	})

	_, err := client.GetBusiness(context.Background(), "", "nope")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "Business not found", statusErr.Body)
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"business_summary":`))
	})

	_, err := client.GetSummary(context.Background(), "", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch AI analysis: invalid response")
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "access_token", time.Second)
	_, err := client.GetBusiness(context.Background(), "", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "business request failed")
}

func TestClient_Logout_AcceptsRedirect(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/logout", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", MaxAge: -1})
		http.Redirect(w, r, "http://localhost:3000/", http.StatusFound)
	})

	assert.NoError(t, client.Logout(context.Background(), "tok"))
}

func TestClient_Ping(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Hello":"World"}`))
	})
	assert.NoError(t, healthy.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(t, down.Ping(context.Background()))
}
