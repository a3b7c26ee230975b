package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipforge/clipforge-engine/pkg/apperrors"
)

func TestKVRepository_PutGetRoundTrip(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))
	ctx := context.Background()

	value := []byte(`{"volume":0.8}`)
	require.NoError(t, repo.Put(ctx, "player-settings", value, "application/json"))

	stored, err := repo.Get(ctx, "player-settings")
	require.NoError(t, err)
	assert.Equal(t, "player-settings", stored.Key)
	assert.Equal(t, value, stored.Value)
	assert.Equal(t, "application/json", stored.MimeType)
}

func TestKVRepository_GetMissing(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrKeyNotFound)
}

func TestKVRepository_PutLastWriteWins(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte("one"), "text/plain"))
	require.NoError(t, repo.Put(ctx, "k", []byte("two"), "text/plain"))

	stored, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), stored.Value)
}

func TestKVRepository_AudioNamespaceKeys(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))
	ctx := context.Background()

	blob := []byte{0x49, 0x44, 0x33}
	require.NoError(t, repo.Put(ctx, "audio:intro track.mp3", blob, "audio/mpeg"))

	stored, err := repo.Get(ctx, "audio:intro track.mp3")
	require.NoError(t, err)
	assert.Equal(t, blob, stored.Value)
	assert.Equal(t, "audio/mpeg", stored.MimeType)
}

func TestKVRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte("v"), ""))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrKeyNotFound)
}

func TestBlobStore_ResolvesBothCollections(t *testing.T) {
	db := openTestDB(t)
	assets := NewAssetRepository(db)
	kv := NewKVRepository(db)
	ctx := context.Background()

	require.NoError(t, assets.Put(ctx, testAsset("a1")))
	require.NoError(t, kv.Put(ctx, "audio:intro.mp3", []byte{0x01}, "audio/mpeg"))

	store := NewBlobStore(assets, kv)

	asset, err := store.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", asset.FileName)

	value, err := store.GetValue(ctx, "audio:intro.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, value.Value)
}
