package platform

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"ecotrack/internal/model"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", AppID: "eco", APIKey: "secret"})
}

func TestClient_Filter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/apps/eco/entities/Activity", r.URL.Path)
		assert.Equal(t, "-created_date", r.URL.Query().Get("sort"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.JSONEq(t, `{"created_by":"ada@example.com"}`, r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.Header.Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"a1","created_by":"ada@example.com","category":"transport","subcategory":"Bike","co2_impact":-2.05,"quantity":5,"unit":"mile","date":"2024-06-15"}]`)
	})

	store := NewEntityStore(client)
	activities, err := store.ListActivitiesByUser(context.Background(), "ada@example.com", 100)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.CategoryTransport, activities[0].Category)
	assert.Equal(t, model.Day("2024-06-15"), activities[0].Date)
	assert.True(t, activities[0].IsOffset())
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectedErr error
	}{
		{name: "Not found", status: http.StatusNotFound, expectedErr: model.ErrNotFound},
		{name: "Unauthorized", status: http.StatusUnauthorized, expectedErr: model.ErrNotAuthenticated},
		{name: "Forbidden", status: http.StatusForbidden, expectedErr: model.ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			err := client.Get(context.Background(), "Challenge", "c1", &model.Challenge{})

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}

	t.Run("Server error carries the status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		})

		err := client.List(context.Background(), "Challenge", "", 0, &[]*model.Challenge{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream down", apiErr.Body)
	})
}

func TestEntityStore_GetProgressByUser(t *testing.T) {
	t.Run("Missing row", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})

		_, err := NewEntityStore(client).GetProgressByUser(context.Background(), "ada@example.com")

		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("First row", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.JSONEq(t, `{"user_email":"ada@example.com"}`, r.URL.Query().Get("q"))
			_, _ = io.WriteString(w, `[{"id":"p1","user_email":"ada@example.com","eco_points":120,"badges":["First Steps"]}]`)
		})

		p, err := NewEntityStore(client).GetProgressByUser(context.Background(), "ada@example.com")

		require.NoError(t, err)
		assert.Equal(t, 120, p.EcoPoints)
		assert.True(t, p.HasBadge("First Steps"))
	})
}

func TestEntityStore_UpdateProgress(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/apps/eco/entities/UserProgress/p1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(25), body["eco_points"])
		assert.Equal(t, "2024-06-15", body["last_activity_date"])
		assert.NotContains(t, body, "id")

		_, _ = io.WriteString(w, `{"id":"p1","user_email":"ada@example.com","eco_points":25}`)
	})

	updated, err := NewEntityStore(client).UpdateProgress(context.Background(), &model.UserProgress{
		ID:               "p1",
		UserEmail:        "ada@example.com",
		EcoPoints:        25,
		LastActivityDate: "2024-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, 25, updated.EcoPoints)
}

func TestEntityStore_CreateActivity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "energy", body["category"])
		assert.Equal(t, "ada@example.com", body["created_by"])

		_, _ = io.WriteString(w, `{"id":"a9","category":"energy","co2_impact":3.7,"date":"2024-06-15"}`)
	})

	created, err := NewEntityStore(client).CreateActivity(context.Background(), &model.Activity{
		CreatedBy: "ada@example.com",
		Category:  model.CategoryEnergy,
		CO2Impact: 3.7,
		Date:      "2024-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "a9", created.ID)
	assert.Equal(t, "ada@example.com", created.CreatedBy)
}

func TestEntityStore_ActivityHistoryByCreator(t *testing.T) {
	var stored []map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body["id"] = "a1"
			stored = append(stored, body)
			require.NoError(t, json.NewEncoder(w).Encode(body))
		case http.MethodGet:
			var q map[string]any
			require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("q")), &q))
			matched := []map[string]any{}
			for _, row := range stored {
				if row["created_by"] == q["created_by"] {
					matched = append(matched, row)
				}
			}
			require.NoError(t, json.NewEncoder(w).Encode(matched))
		}
	})
	store := NewEntityStore(client)

	_, err := store.CreateActivity(context.Background(), &model.Activity{
		CreatedBy:   "ada@example.com",
		Category:    model.CategoryTransport,
		Subcategory: "Car (gasoline)",
		CO2Impact:   -2.05,
		Date:        "2024-06-15",
	})
	require.NoError(t, err)

	mine, err := store.ListActivitiesByUser(context.Background(), "ada@example.com", 100)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ada@example.com", mine[0].CreatedBy)

	theirs, err := store.ListActivitiesByUser(context.Background(), "bob@example.com", 100)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestClient_CurrentUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/apps/eco/entities/User/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Empty(t, r.Header.Get("api_key"))
		_, _ = io.WriteString(w, `{"id":"u1","email":"ada@example.com","full_name":"Ada","location":"Detroit"}`)
	})

	user, err := client.CurrentUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = client.CurrentUser(context.Background(), "bad")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)

	_, err = client.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestClient_GenerateText(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
		wantErr  bool
	}{
		{name: "Bare string", response: `"Plant more trees."`, expected: "Plant more trees."},
		{name: "Wrapped response", response: `{"response":"Walk more."}`, expected: "Walk more."},
		{name: "Empty object", response: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/apps/eco/integration-endpoints/Core/InvokeLLM", r.URL.Path)

				var body invokeLLMRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "hi", body.Prompt)
				assert.False(t, body.AddContextFromInternet)

				_, _ = io.WriteString(w, tt.response)
			})

			text, err := client.GenerateText(context.Background(), "hi", model.GenerateOptions{})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{name: "Short string", input: "ok", n: 5, expected: "ok"},
		{name: "ASCII cut", input: "abcdef", n: 3, expected: "abc"},
		{name: "Cut inside a rune", input: "ab€", n: 3, expected: "ab"},
		{name: "Cut after a rune", input: "€€", n: 3, expected: "€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.n)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
