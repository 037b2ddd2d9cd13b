package familyshop

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
)

func TestAuthHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true,"categories":[]}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, Token: "secret-token"})
	_, err := client.Categories(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestBrotliResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte(`{"ok":true,"categories":[{"id":1,"name":"Ropa"}]}`))
		bw.Close()

		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	categories, err := client.Categories(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, categories, 1) {
		assert.Equal(t, "Ropa", categories[0].Name)
	}
}

func TestTransportFailure(t *testing.T) {
	// Nothing listens here; the request never reaches a server.
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := client.Categories(context.Background())

	var apiErr *Error
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, KindTransport, apiErr.Kind)
		assert.NotEmpty(t, apiErr.Message)
	}
	assert.False(t, IsRejected(err))
}

func TestApplicationRejection_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"message":"categoría no encontrada"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	_, err := client.Category(context.Background(), 42)

	var apiErr *Error
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, KindRejected, apiErr.Kind)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "categoría no encontrada", apiErr.Message)
	}
	assert.True(t, IsRejected(err))
	assert.Equal(t, "categoría no encontrada", Reason(err))
}

func TestApplicationRejection_OKFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"message":"sin permisos"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	_, err := client.Categories(context.Background())

	var apiErr *Error
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, KindRejected, apiErr.Kind)
		assert.Equal(t, "sin permisos", apiErr.Message)
	}
}

func TestMutationsNeverPanic(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json at all`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})

	// Every mutation reports failure as a value.
	assert.NotPanics(t, func() {
		_, err := client.CreateCategory(context.Background(), CategoryInput{Name: "x"})
		assert.Error(t, err)
		assert.NotEmpty(t, Reason(err))

		err = client.DeleteProduct(context.Background(), 1)
		assert.Error(t, err)

		err = client.DeleteCategory(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestInvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`invalid-json`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	_, err := client.Categories(context.Background())

	assert.Error(t, err)
	assert.False(t, errors.As(err, new(*Error)))
}
