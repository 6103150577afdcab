package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/media", "test-key", ttl)
	require.NoError(t, err)
	return store
}

func TestUploadAndOpen(t *testing.T) {
	store := newTestStore(t, time.Hour)

	blobURL, err := store.Upload(context.Background(), "clip.mp4", strings.NewReader("payload"), 7)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/clip.mp4", blobURL)

	f, err := store.Open("clip.mp4")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)

	signed, err := store.SignedURL("clip.mp4")
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	exp := u.Query().Get("exp")
	sig := u.Query().Get("sig")
	require.NotEmpty(t, exp)
	require.NotEmpty(t, sig)

	assert.True(t, store.Verify("clip.mp4", exp, sig))
}

func TestVerifyRejectsTamperedName(t *testing.T) {
	store := newTestStore(t, time.Hour)

	signed, err := store.SignedURL("clip.mp4")
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	assert.False(t, store.Verify("other.mp4", u.Query().Get("exp"), u.Query().Get("sig")))
}

func TestVerifyRejectsExpired(t *testing.T) {
	store := newTestStore(t, -time.Minute)

	signed, err := store.SignedURL("clip.mp4")
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	assert.False(t, store.Verify("clip.mp4", u.Query().Get("exp"), u.Query().Get("sig")))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	store := newTestStore(t, time.Hour)

	assert.False(t, store.Verify("clip.mp4", "not-a-number", "sig"))
	assert.False(t, store.Verify("clip.mp4", "9999999999", "bogus"))
}
