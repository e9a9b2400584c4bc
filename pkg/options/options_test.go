package options_test

import (
	"colormeow/pkg/database"
	"colormeow/pkg/options"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "options.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitDefault(t *testing.T) {
	opts := options.Options{}.InitDefault()
	assert.Equal(t, 200, opts.WheelSize)
	assert.Equal(t, 50, opts.TriangleSteps)
	assert.Equal(t, "PNG", opts.SwatchFormat)
	assert.True(t, opts.FirstBoot)
}

func TestSaveAndLoad(t *testing.T) {
	db := openDB(t)

	exists, err := options.CheckOptionsExists(db)
	require.NoError(t, err)
	assert.False(t, exists)

	opts := options.Options{}.InitDefault()
	opts.SwatchFormat = "WEBP"
	opts.RecentColors = []string{"#FF0000"}
	require.NoError(t, options.SaveOptionsToDB(db, opts))
	assert.True(t, opts.FirstBoot)

	exists, err = options.CheckOptionsExists(db)
	require.NoError(t, err)
	assert.True(t, exists)

	opts.UseRGB = true
	require.NoError(t, options.SaveOptionsToDB(db, opts))
	assert.False(t, opts.FirstBoot)

	loaded, err := options.LoadOptionsFromDB(db)
	require.NoError(t, err)
	assert.Equal(t, "WEBP", loaded.SwatchFormat)
	assert.True(t, loaded.UseRGB)
	assert.Equal(t, []string{"#FF0000"}, loaded.RecentColors)
	assert.False(t, loaded.FirstBoot)
}

func TestLoadWithoutRowReturnsDefaults(t *testing.T) {
	db := openDB(t)

	loaded, err := options.LoadOptionsFromDB(db)
	require.NoError(t, err)
	assert.Equal(t, 200, loaded.WheelSize)
}

func TestAddRecentColor(t *testing.T) {
	opts := options.Options{}.InitDefault()
	opts.AddRecentColor("#000001")
	opts.AddRecentColor("#000002")
	opts.AddRecentColor("#000001")
	assert.Equal(t, []string{"#000001", "#000002"}, opts.RecentColors)

	for i := 0; i < 20; i++ {
		opts.AddRecentColor(string(rune('A' + i)))
	}
	assert.Len(t, opts.RecentColors, 12)
	assert.Equal(t, "T", opts.RecentColors[0])
}
