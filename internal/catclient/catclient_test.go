package catclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFact_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fact":"Cats sleep a lot.","length":18}`))
	}))
	defer srv.Close()

	c := New(WithBaseURLs(srv.URL, srv.URL))
	assert.Equal(t, "Cats sleep a lot.", c.Fact(context.Background()))
}

func TestFact_FallbackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(WithBaseURLs(srv.URL, srv.URL))
	assert.Equal(t, FallbackFact, c.Fact(context.Background()))
}

func TestFact_FallbackOnUnreachable(t *testing.T) {
	c := New(WithBaseURLs("http://127.0.0.1:1/fact", "http://127.0.0.1:1/images"))
	assert.Equal(t, FallbackFact, c.Fact(context.Background()))
	assert.Equal(t, FallbackImageURL, c.ImageURL(context.Background()))
}

func TestImageURL_Upstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"abc","url":"https://cdn.example/cat.jpg"}]`))
	}))
	defer srv.Close()

	c := New(WithBaseURLs(srv.URL, srv.URL))
	assert.Equal(t, "https://cdn.example/cat.jpg", c.ImageURL(context.Background()))
}

func TestImageURL_FallbackOnEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(WithBaseURLs(srv.URL, srv.URL))
	assert.Equal(t, FallbackImageURL, c.ImageURL(context.Background()))
}

func TestImageURL_FallbackOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(WithBaseURLs(srv.URL, srv.URL))
	assert.Equal(t, FallbackImageURL, c.ImageURL(context.Background()))
}
