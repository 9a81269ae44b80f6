// Package images forwards uploaded files to the external image storage
// service and hands back the stored URI. Only the URI is ever persisted.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

// Uploader stores an image and returns its public URI.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// Client talks to the image storage HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Upload sends the image as multipart form data and returns the stored URI.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Image upload request failed")
		return "", apperr.Wrap(apperr.Gateway, "failed to upload image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.WithField("status", resp.StatusCode).Error("Image storage returned error status")
		return "", apperr.Newf(apperr.Gateway, "image storage returned status %d", resp.StatusCode)
	}

	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", apperr.Wrap(apperr.Gateway, "failed to decode image storage response", err)
	}
	if !uploadResp.Success || uploadResp.URL == "" {
		return "", apperr.New(apperr.Gateway, "image storage rejected upload")
	}

	c.logger.WithFields(logrus.Fields{
		"name": name,
		"url":  uploadResp.URL,
	}).Info("Image uploaded")
	return uploadResp.URL, nil
}
