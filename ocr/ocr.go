//go:build ocr

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract. It is not safe for concurrent use.
type Client struct {
	client   *gosseract.Client
	settings settings
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New(opts ...Option) (*Client, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(s.language); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting language %q: %w", s.language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(s.mode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	return &Client{client: client, settings: s}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns the raw recognized text.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// Describe recognizes the text in a picture and returns it as alt text.
func (c *Client) Describe(imageData []byte) (string, error) {
	text, err := c.RecognizeImage(imageData)
	if err != nil {
		return "", err
	}
	return altText(text, c.settings.maxAltText), nil
}
