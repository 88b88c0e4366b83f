package report_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xeptore/yamusic/report"
	"github.com/xeptore/yamusic/yandex/downloader"
)

func TestRender(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	report.Render(&sb, []downloader.TrackResult{
		{Artist: "Massive Attack", Title: "Angel", Format: "FLAC", Outcome: downloader.OutcomeDone, Err: nil},
		{Artist: "Massive Attack", Title: "Risingson", Format: "", Outcome: downloader.OutcomeSkipped, Err: nil},
		{Artist: "Massive Attack", Title: "Teardrop", Format: "", Outcome: downloader.OutcomeFailed, Err: errors.New("unknown codec: wavpack")},
	})

	out := sb.String()
	assert.Contains(t, out, "Angel")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "unknown codec: wavpack")
	assert.Contains(t, out, "done 1, skipped 1, failed 1")
}
