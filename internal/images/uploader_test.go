package images

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestUploadReturnsStoredURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"url":"https://img.example.com/abc.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", testLogger())
	url, err := c.Upload(context.Background(), "avatar.jpg", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/abc.jpg", url)
}

func TestUploadRejectedByStorage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	_, err := c.Upload(context.Background(), "avatar.jpg", strings.NewReader("fake-bytes"))
	require.Error(t, err)
	assert.Equal(t, apperr.Gateway, apperr.KindOf(err))
}

func TestUploadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", testLogger())
	_, err := c.Upload(context.Background(), "avatar.jpg", strings.NewReader("fake-bytes"))
	require.Error(t, err)
	assert.Equal(t, apperr.Gateway, apperr.KindOf(err))
}

func TestNormalizeScalesDownWideImages(t *testing.T) {
	var buf bytes.Buffer
	wide := image.NewRGBA(image.Rect(0, 0, 1600, 400))
	require.NoError(t, jpeg.Encode(&buf, wide, nil))

	out, err := Normalize(&buf)
	require.NoError(t, err)

	decoded, _, err := image.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, MaxWidth, decoded.Bounds().Dx())
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, err := Normalize(strings.NewReader("not an image"))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
