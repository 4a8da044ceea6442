package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestD1ClientQuerySuccess(t *testing.T) {
	var gotBody d1Request
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(d1Response{
			Success: true,
			Result: []d1Result{{
				Success: true,
				Results: []Row{{"id": float64(1), "email": "demo@example.local"}},
			}},
		})
	}))
	defer srv.Close()

	client := NewD1ClientWithEndpoint(srv.URL, "token-123")
	rows, err := client.Query(context.Background(), "SELECT id, email FROM users WHERE id = ?", 1)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "SELECT id, email FROM users WHERE id = ?", gotBody.SQL)
	assert.Equal(t, []any{float64(1)}, gotBody.Params)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Int64("id"))
	assert.Equal(t, "demo@example.local", rows[0].String("email"))
}

func TestD1ClientQueryNoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(d1Response{
			Success: true,
			Result:  []d1Result{{Success: true}},
		})
	}))
	defer srv.Close()

	client := NewD1ClientWithEndpoint(srv.URL, "token")
	rows, err := client.Query(context.Background(), "DELETE FROM bookmarks WHERE id = ?", 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestD1ClientQueryFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"http error status",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no such database", http.StatusNotFound)
			},
		},
		{
			"api success flag false",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(d1Response{Success: false})
			},
		},
		{
			"per statement error",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(d1Response{
					Success: true,
					Errors:  []d1APIError{{Code: 7500, Message: "near \"SELEC\": syntax error"}},
				})
			},
		},
		{
			"empty result payload",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(d1Response{Success: true})
			},
		},
		{
			"first result not successful",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(d1Response{
					Success: true,
					Result:  []d1Result{{Success: false}},
				})
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewD1ClientWithEndpoint(srv.URL, "token")
			_, err := client.Query(context.Background(), "SELECT 1")

			var backendErr *BackendError
			assert.ErrorAs(t, err, &backendErr)
		})
	}
}

func TestD1ClientUnreachable(t *testing.T) {
	client := NewD1ClientWithEndpoint("http://127.0.0.1:1/query", "token")
	_, err := client.Query(context.Background(), "SELECT 1")

	var backendErr *BackendError
	assert.ErrorAs(t, err, &backendErr)
}
