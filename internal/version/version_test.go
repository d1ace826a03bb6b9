package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-01-01", expected: 0},
		{name: "next day after epoch", date: "2026-01-02", expected: 1},
		{name: "one year later", date: "2027-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1096},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-31", wantError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildID(tt.date)
			if tt.wantError {
				assert.Error(t, err, "id=%d", got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-03-05T10:00:00Z"},
	}

	var info VersionInfo
	fromBuildSettings(&info, settings)
	assert.Equal(t, "0123456", info.Commit)
	assert.Equal(t, "2026-03-05", info.BuildDate)

	// ldflags имеют приоритет над VCS-метками
	pinned := VersionInfo{Commit: "release", BuildDate: "2026-02-01"}
	fromBuildSettings(&pinned, settings)
	assert.Equal(t, "release", pinned.Commit)
	assert.Equal(t, "2026-02-01", pinned.BuildDate)
}
