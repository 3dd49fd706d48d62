package mocks

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/wilideparisdenode/bloggerBackend/internal/media"
)

// MockTokenSigner issues predictable tokens for tests
type MockTokenSigner struct {
	SignError error
}

func (m *MockTokenSigner) Sign(userID string) (string, error) {
	if m.SignError != nil {
		return "", m.SignError
	}
	return "token-" + userID, nil
}

func (m *MockTokenSigner) Verify(token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", errors.New("invalid token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

// MockPasswordHasher hashes by prefixing, keeping tests readable
type MockPasswordHasher struct{}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (m *MockPasswordHasher) Compare(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

// MockMediaHost records uploads and deletions
type MockMediaHost struct {
	UploadError error
	DeleteError error
	Uploads     []string
	Deleted     []string
}

func (m *MockMediaHost) Upload(ctx context.Context, file io.Reader, filename string) (*media.Asset, error) {
	if m.UploadError != nil {
		return nil, m.UploadError
	}
	m.Uploads = append(m.Uploads, filename)
	return &media.Asset{
		URL:     "https://media.test/" + filename,
		AssetID: "asset-" + filename,
	}, nil
}

func (m *MockMediaHost) Delete(ctx context.Context, assetID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.Deleted = append(m.Deleted, assetID)
	return nil
}
