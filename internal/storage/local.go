package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStore keeps blobs on the local filesystem and signs read URLs with an
// HMAC over (name, expiry), the same shape as an account-key SAS token. It
// stands in for a managed object store behind the BlobStore interface.
type LocalStore struct {
	dir        string
	baseURL    string
	signingKey []byte
	ttl        time.Duration
}

func NewLocalStore(dir, baseURL, signingKey string, ttl time.Duration) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &LocalStore{
		dir:        dir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}, nil
}

func (s *LocalStore) Upload(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return "", fmt.Errorf("creating blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return s.baseURL + "/" + url.PathEscape(name), nil
}

func (s *LocalStore) SignedURL(name string) (string, error) {
	exp := time.Now().Add(s.ttl).Unix()
	sig := s.sign(name, exp)
	return fmt.Sprintf("%s/%s?exp=%d&sig=%s", s.baseURL, url.PathEscape(name), exp, sig), nil
}

// Verify checks the exp/sig pair issued by SignedURL. It returns false for a
// bad signature or an expired URL.
func (s *LocalStore) Verify(name, expStr, sig string) bool {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > exp {
		return false
	}
	expected := s.sign(name, exp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

// Open returns a reader for the named blob.
func (s *LocalStore) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(name)))
}

func (s *LocalStore) sign(name string, exp int64) string {
	mac := hmac.New(sha256.New, s.signingKey)
	fmt.Fprintf(mac, "%s\n%d", name, exp)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
