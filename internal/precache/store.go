// Package precache keeps build assets available offline. A manifest of
// asset URLs and content revisions drives what is stored; assets whose
// revision disappears from the manifest are purged on activation so
// stale deployments do not linger.
package precache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Asset is one precached file.
type Asset struct {
	URL         string `gorm:"primaryKey"`
	Revision    string
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}

var ErrNotCached = errors.New("precache: asset not cached")

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (or creates) the asset store at path. ":memory:" gives an
// ephemeral store, which tests use.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open precache store: %w", err)
	}
	// One connection: sqlite serializes writers anyway, and a pool
	// would hand ":memory:" stores a fresh database per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open precache store: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Asset{}); err != nil {
		return nil, fmt.Errorf("migrate precache store: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Put(ctx context.Context, a Asset) error {
	a.FetchedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&a).Error; err != nil {
		return fmt.Errorf("store asset %s: %w", a.URL, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, url string) (*Asset, error) {
	var a Asset
	err := s.db.WithContext(ctx).First(&a, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", url, err)
	}
	return &a, nil
}

// Revision returns the stored revision for url, or "" when absent.
func (s *Store) Revision(ctx context.Context, url string) string {
	var a Asset
	err := s.db.WithContext(ctx).Select("url", "revision").First(&a, "url = ?", url).Error
	if err != nil {
		return ""
	}
	return a.Revision
}

// Purge deletes every asset not present in keep (URL -> revision) or
// stored under an outdated revision. Returns the number removed.
func (s *Store) Purge(ctx context.Context, keep map[string]string) (int, error) {
	var all []Asset
	if err := s.db.WithContext(ctx).Select("url", "revision").Find(&all).Error; err != nil {
		return 0, fmt.Errorf("list assets: %w", err)
	}
	removed := 0
	for _, a := range all {
		rev, ok := keep[a.URL]
		if ok && rev == a.Revision {
			continue
		}
		if err := s.db.WithContext(ctx).Delete(&Asset{}, "url = ?", a.URL).Error; err != nil {
			return removed, fmt.Errorf("purge asset %s: %w", a.URL, err)
		}
		removed++
	}
	return removed, nil
}

// Downloader fetches one asset body. The shell wires this to the
// storefront origin.
type Downloader interface {
	Download(ctx context.Context, url string) (body []byte, contentType string, err error)
}

// Keep maps a manifest into the form Purge expects.
func Keep(entries []ManifestEntry) map[string]string {
	keep := make(map[string]string, len(entries))
	for _, e := range entries {
		keep[e.URL] = e.Revision
	}
	return keep
}

// Install fetches every manifest asset whose stored revision is missing
// or outdated, concurrently. Nothing is purged here; that happens on
// activation.
func (s *Store) Install(ctx context.Context, dl Downloader, entries []ManifestEntry) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, e := range entries {
		if s.Revision(ctx, e.URL) == e.Revision {
			continue
		}
		e := e
		g.Go(func() error {
			body, contentType, err := dl.Download(ctx, e.URL)
			if err != nil {
				return fmt.Errorf("fetch asset %s: %w", e.URL, err)
			}
			return s.Put(ctx, Asset{
				URL:         e.URL,
				Revision:    e.Revision,
				ContentType: contentType,
				Body:        body,
			})
		})
	}
	return g.Wait()
}

// Sync is Install followed by Purge; the daemon runs it on a schedule
// to track new deployments.
func (s *Store) Sync(ctx context.Context, dl Downloader, entries []ManifestEntry) error {
	if err := s.Install(ctx, dl, entries); err != nil {
		return err
	}
	removed, err := s.Purge(ctx, Keep(entries))
	if err != nil {
		return err
	}
	if removed > 0 {
		s.log.Info("purged outdated precache entries", zap.Int("removed", removed))
	}
	return nil
}
