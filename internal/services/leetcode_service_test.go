package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchProfile(t *testing.T) {
	t.Run("Successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ada-lc", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": "success",
				"totalSolved": 60,
				"easySolved": 30,
				"mediumSolved": 20,
				"hardSolved": 10,
				"acceptanceRate": 80.5,
				"ranking": 12345
			}`))
		}))
		defer server.Close()

		service := NewLeetCodeService(server.URL)
		profile, err := service.FetchProfile(context.Background(), "ada-lc")

		assert.NoError(t, err)
		assert.Equal(t, 60, profile.TotalSolved)
		assert.Equal(t, 30, profile.EasySolved)
		assert.Equal(t, 20, profile.MediumSolved)
		assert.Equal(t, 10, profile.HardSolved)
		assert.Equal(t, 80.5, profile.SubmissionRate)
		assert.Equal(t, 12345, profile.Ranking)
	})

	t.Run("Missing fields decode to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "success", "totalSolved": 5}`))
		}))
		defer server.Close()

		service := NewLeetCodeService(server.URL)
		profile, err := service.FetchProfile(context.Background(), "newbie")

		assert.NoError(t, err)
		assert.Equal(t, 5, profile.TotalSolved)
		assert.Equal(t, 0, profile.HardSolved)
		assert.Equal(t, 0.0, profile.SubmissionRate)
	})

	t.Run("API error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "error", "message": "user does not exist"}`))
		}))
		defer server.Close()

		service := NewLeetCodeService(server.URL)
		profile, err := service.FetchProfile(context.Background(), "ghost")

		assert.Nil(t, profile)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user does not exist")
	})

	t.Run("Non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		service := NewLeetCodeService(server.URL)
		profile, err := service.FetchProfile(context.Background(), "ada-lc")

		assert.Nil(t, profile)
		assert.Error(t, err)
	})
}
