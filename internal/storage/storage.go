package storage

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// Client re-hosts generated assets on first-party object storage so they
// outlive the generation provider's transient URLs.
type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewClient(supabaseURL, serviceKey, bucket string) (*Client, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// UploadFile stores data under key and returns the public URL.
func (s *Client) UploadFile(key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}

// PublicBaseURL is the prefix every public URL from this bucket starts
// with. The download proxy uses it to reject foreign URLs.
func (s *Client) PublicBaseURL() string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
}

func (s *Client) DeleteFile(key string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{key})
	return err
}

// KeyFromPublicURL converts a public URL from this bucket back to its
// storage key. Returns false for URLs outside the bucket.
func (s *Client) KeyFromPublicURL(publicURL string) (string, bool) {
	prefix := s.PublicBaseURL()
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}
