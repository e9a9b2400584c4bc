package main

import (
	"colormeow/pkg/apptheme"
	"colormeow/pkg/database"
	"colormeow/pkg/logger"
	"colormeow/pkg/options"
	"colormeow/pkg/palettes"
	"colormeow/pkg/popupwindow"
	"colormeow/pkg/profiling"
	"database/sql"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

var appLogger = logger.InitLogger()

// loadOptions reads the stored options, writing the defaults on first boot.
func loadOptions(db *sql.DB) (*options.Options, error) {
	exists, err := options.CheckOptionsExists(db)
	if err != nil {
		return nil, err
	}
	if !exists {
		opts := options.Options{}.InitDefault()
		if err := options.SaveOptionsToDB(db, opts); err != nil {
			return nil, err
		}
		appLogger.Println("First boot, default options saved")
		return opts, nil
	}
	return options.LoadOptionsFromDB(db)
}

// paletteDatabase opens the configured palette database. The options
// database is reused when the configured path is the default one.
func paletteDatabase(db *sql.DB, opts *options.Options) (*sql.DB, error) {
	if opts.DatabasePath == "" || filepath.Clean(opts.DatabasePath) == filepath.Clean(database.DefaultPath()) {
		return db, nil
	}
	return database.Open(opts.DatabasePath)
}

func newMainWindow(a fyne.App) fyne.Window {
	w := a.NewWindow("Color Meow")
	w.Resize(fyne.NewSize(380, 640))

	icon, err := apptheme.Icon(128)
	if err != nil {
		appLogger.Println("Failed to render icon:", err)
		return w
	}
	a.SetIcon(icon)
	w.SetIcon(icon)
	return w
}

func main() {
	db := database.Init(database.DefaultPath())
	defer db.Close()

	opts, err := loadOptions(db)
	if err != nil {
		appLogger.Fatal("Failed to load options: ", err)
	}

	if opts.Profiling {
		appLogger.Println("Starting Pyroscope")
		profiler, err := profiling.SetupProfiling(profiling.DefaultServer)
		if err != nil {
			appLogger.Println("Failed to start profiling:", err)
		} else {
			defer profiler.Stop()
		}
	}

	paletteDB, err := paletteDatabase(db, opts)
	if err != nil {
		appLogger.Fatal("Failed to open palette database: ", err)
	}
	if paletteDB != db {
		defer paletteDB.Close()
	}

	a := app.NewWithID("app.colormeow")
	a.Settings().SetTheme(apptheme.DefaultTheme{})
	w := newMainWindow(a)

	store := palettes.NewStore(paletteDB)
	popupwindow.New(a, w, db, store, opts)

	w.ShowAndRun()

	if err := database.VacuumDb(paletteDB); err != nil {
		appLogger.Println("Failed to vacuum database:", err)
	}
}
