package gallery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_ProbeAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/confidence_histogram.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	prober := NewProber([]Image{
		{Name: "confidence_histogram", URL: server.URL + "/confidence_histogram.png"},
		{Name: "misclassified_samples", URL: server.URL + "/missing.png"},
		{Name: "broken", URL: "http://127.0.0.1:0/never.png"},
	}, time.Second)

	results := prober.ProbeAll(context.Background())
	require.Len(t, results, 3)

	assert.Equal(t, "confidence_histogram", results[0].Name)
	assert.True(t, results[0].Available)
	assert.Equal(t, "image/png", results[0].ContentType)
	assert.Empty(t, results[0].Error)

	assert.False(t, results[1].Available)
	assert.Equal(t, http.StatusNotFound, results[1].StatusCode)
	assert.Equal(t, "Not Found", results[1].Error)

	assert.False(t, results[2].Available)
	assert.NotEmpty(t, results[2].Error)
	assert.Zero(t, results[2].StatusCode)
}

func TestProber_ImagesReturnsCopy(t *testing.T) {
	prober := NewProber([]Image{{Name: "a", URL: "http://example.com/a.png"}}, 0)

	images := prober.Images()
	images[0].Name = "changed"

	assert.Equal(t, "a", prober.Images()[0].Name)
}
