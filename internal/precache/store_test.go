package precache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDownloader struct {
	bodies map[string]string
	calls  []string
}

func (d *fakeDownloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	d.calls = append(d.calls, url)
	body, ok := d.bodies[url]
	if !ok {
		return nil, "", fmt.Errorf("unexpected status code: 404 for %s", url)
	}
	return []byte(body), "text/plain", nil
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", nil)
	assert.NoError(t, err)
	return store
}

func TestPutGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Put(ctx, Asset{URL: "/index.html", Revision: "r1", ContentType: "text/html", Body: []byte("<html>")})
	assert.NoError(t, err)

	a, err := store.Get(ctx, "/index.html")
	assert.NoError(t, err)
	assert.Equal(t, "r1", a.Revision)
	assert.Equal(t, "text/html", a.ContentType)
	assert.Equal(t, []byte("<html>"), a.Body)

	_, err = store.Get(ctx, "/missing.js")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestInstall_SkipsUnchangedRevisions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	dl := &fakeDownloader{bodies: map[string]string{
		"/index.html":   "<html v1>",
		"/assets/a.js":  "console.log(1)",
		"/assets/b.css": "body{}",
	}}
	manifest := []ManifestEntry{
		{URL: "/index.html", Revision: "r1"},
		{URL: "/assets/a.js", Revision: "a1"},
		{URL: "/assets/b.css", Revision: "b1"},
	}

	assert.NoError(t, store.Install(ctx, dl, manifest))
	assert.Len(t, dl.calls, 3)

	// Second install with the same revisions touches nothing.
	dl.calls = nil
	assert.NoError(t, store.Install(ctx, dl, manifest))
	assert.Empty(t, dl.calls)

	// A bumped revision refetches just that asset.
	dl.bodies["/index.html"] = "<html v2>"
	manifest[0].Revision = "r2"
	assert.NoError(t, store.Install(ctx, dl, manifest))
	assert.Equal(t, []string{"/index.html"}, dl.calls)

	a, err := store.Get(ctx, "/index.html")
	assert.NoError(t, err)
	assert.Equal(t, []byte("<html v2>"), a.Body)
}

func TestPurge_RemovesOutdatedDeployments(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, Asset{URL: "/index.html", Revision: "r1"}))
	assert.NoError(t, store.Put(ctx, Asset{URL: "/assets/old.js", Revision: "o1"}))
	assert.NoError(t, store.Put(ctx, Asset{URL: "/assets/keep.js", Revision: "k1"}))

	removed, err := store.Purge(ctx, map[string]string{
		"/index.html":     "r2", // outdated revision goes too
		"/assets/keep.js": "k1",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get(ctx, "/assets/old.js")
	assert.ErrorIs(t, err, ErrNotCached)
	_, err = store.Get(ctx, "/index.html")
	assert.ErrorIs(t, err, ErrNotCached)
	_, err = store.Get(ctx, "/assets/keep.js")
	assert.NoError(t, err)
}

func TestSync_InstallsThenPurges(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Put(ctx, Asset{URL: "/assets/old.js", Revision: "o1"}))

	dl := &fakeDownloader{bodies: map[string]string{"/index.html": "<html>"}}
	manifest := []ManifestEntry{{URL: "/index.html", Revision: "r1"}}

	assert.NoError(t, store.Sync(ctx, dl, manifest))

	_, err := store.Get(ctx, "/index.html")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "/assets/old.js")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestSync_DownloadFailure(t *testing.T) {
	store := openTestStore(t)
	dl := &fakeDownloader{bodies: map[string]string{}}

	err := store.Sync(context.Background(), dl, []ManifestEntry{{URL: "/gone.js", Revision: "g1"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/gone.js")
}
