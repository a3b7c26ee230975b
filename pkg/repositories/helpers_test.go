package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/database"
	"github.com/clipforge/clipforge-engine/pkg/models"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), &database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.RunMigrations(db.DB, zap.NewNop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testProject(id string) *models.Project {
	return &models.Project{
		ID:        id,
		Name:      "My Video Project",
		EditDraft: []byte(`{"tracks":[{"id":"t-1","elements":[]}],"version":3}`),
		AssetIDs:  models.StringSet{},
		UpdatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func testAsset(id string) *models.Asset {
	return &models.Asset{
		ID:        id,
		FileName:  "clip.mp4",
		Type:      models.AssetTypeVideo,
		MimeType:  "video/mp4",
		Blob:      []byte{0xde, 0xad, 0xbe, 0xef},
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}
