package downloader

import (
	"context"

	"github.com/samber/lo"

	"github.com/xeptore/yamusic/cache"
)

// cover fetches album art through the per-run cache. Playlist tracks from
// the same album share a cover URI, so consecutive tracks hit the cache.
func (d *Downloader) cover(ctx context.Context, coverURI string) ([]byte, error) {
	key := coverURI + lo.Ternary(d.conf.OriginalCovers, "#orig", "#1000x1000")
	cached, err := d.cache.Covers.Fetch(key, cache.DefaultCoverTTL, func() ([]byte, error) {
		return d.client.Cover(ctx, coverURI, d.conf.OriginalCovers)
	})
	if nil != err {
		return nil, err
	}

	return cached.Value(), nil
}
