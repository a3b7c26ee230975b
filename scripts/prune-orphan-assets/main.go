// prune-orphan-assets removes asset blobs no project references anymore.
//
// Deleting an asset never rewrites project records, and deleting a project
// never cascades into its assets, so blobs can accumulate that no asset_ids
// list points at. This walks every project's asset_ids and deletes the
// asset rows left over.
//
// Usage: go run ./scripts/prune-orphan-assets [-dry-run=false] [-db path]
//
// Flags:
//
//	-dry-run   Show what would be deleted without actually deleting (default: true)
//	-db        Path to the database file (default: clipforge.db)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/database"
)

func main() {
	dryRun := flag.Bool("dry-run", true, "Show what would be deleted without actually deleting")
	dbPath := flag.String("db", "clipforge.db", "Path to the database file")
	flag.Parse()

	if err := run(context.Background(), *dbPath, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath string, dryRun bool) error {
	db, err := database.Open(ctx, &database.Config{Path: dbPath, BusyTimeoutMS: 5000})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, zap.NewNop()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	referenced, err := referencedAssetIDs(ctx, db)
	if err != nil {
		return err
	}

	orphans, err := orphanAssets(ctx, db, referenced)
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		fmt.Println("No orphaned assets found.")
		return nil
	}

	fmt.Printf("Found %d orphaned asset(s):\n", len(orphans))
	for _, o := range orphans {
		fmt.Printf("  %s  %s (%d bytes)\n", o.id, o.fileName, o.size)
	}

	if dryRun {
		fmt.Println("\nDry run: nothing deleted. Re-run with -dry-run=false to delete.")
		return nil
	}

	for _, o := range orphans {
		if _, err := db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, o.id); err != nil {
			return fmt.Errorf("delete asset %s: %w", o.id, err)
		}
	}
	fmt.Printf("\nDeleted %d asset(s).\n", len(orphans))
	return nil
}

// referencedAssetIDs collects every asset id any project still points at.
func referencedAssetIDs(ctx context.Context, db *database.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT asset_ids FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	referenced := map[string]bool{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, fmt.Errorf("decode asset_ids: %w", err)
		}
		for _, id := range ids {
			referenced[id] = true
		}
	}
	return referenced, rows.Err()
}

type orphan struct {
	id       string
	fileName string
	size     int
}

func orphanAssets(ctx context.Context, db *database.DB, referenced map[string]bool) ([]orphan, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, file_name, length(blob) FROM assets`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var orphans []orphan
	for rows.Next() {
		var o orphan
		if err := rows.Scan(&o.id, &o.fileName, &o.size); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		if !referenced[o.id] {
			orphans = append(orphans, o)
		}
	}
	return orphans, rows.Err()
}
