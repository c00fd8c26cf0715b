package restcountries

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countrystats/internal/model"
)

func TestClient_All(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/all", r.URL.Path)
		assert.Equal(t, "name,population,currencies,region", r.URL.Query().Get("fields"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `[{"name":{"common":"Germany"},"population":83240525,"region":"Europe","currencies":{"EUR":{"symbol":"€"}}},{"population":12}]`)
	}))
	defer server.Close()

	client := New(server.URL + "/v3.1/")
	countries, err := client.All(context.Background())

	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "Germany", countries[0].CommonName())
	assert.Equal(t, model.Population(83240525), countries[0].Population)
	assert.Equal(t, "Europe", countries[0].Region)
	assert.Equal(t, model.Unknown, countries[1].CommonName())
}

func TestClient_SearchByName_EscapesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/united%20states%2Fx", r.URL.EscapedPath())
		fmt.Fprintln(w, `[{"name":{"common":"United States"},"population":329484123,"region":"Americas"}]`)
	}))
	defer server.Close()

	client := New(server.URL)
	countries, err := client.SearchByName(context.Background(), "united states/x")

	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "United States", countries[0].CommonName())
}

func TestClient_SearchByName_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	countries, err := New(server.URL).SearchByName(context.Background(), "zz")

	require.NoError(t, err)
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}

func TestClient_NotFound(t *testing.T) {
	t.Run("404 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"status": 404, "message": "Not Found"}`)
		}))
		defer server.Close()

		_, err := New(server.URL).SearchByName(context.Background(), "Atlantis")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("error object with 200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"status": 404, "message": "Not Found"}`)
		}))
		defer server.Close()

		_, err := New(server.URL).SearchByName(context.Background(), "Atlantis")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"status": 500, "message": "boom"}`)
	}))
	defer server.Close()

	_, err := New(server.URL).All(context.Background())

	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "unexpected status 500: boom", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[{"name": "Germany"`)
	}))
	defer server.Close()

	_, err := New(server.URL).All(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).All(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	_, err := New(server.URL, WithTimeout(20*time.Millisecond)).All(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}

func TestClient_Metrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/name/nope" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintln(w, `[]`)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	client := New(server.URL, WithMetrics(m))
	_, _ = client.All(context.Background())
	_, _ = client.SearchByName(context.Background(), "nope")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("all", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("name", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice on one registry must fail")
}
