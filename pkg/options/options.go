package options

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"runtime"
)

// maxRecentColors bounds the recently picked colors kept for the picker view.
const maxRecentColors = 12

type Options struct {
	DatabasePath  string
	WheelSize     int // pixel size of the palette editor wheel
	TriangleSteps int // mesh density of the hue/triangle picker
	SwatchFormat  string
	SwatchCell    int // swatch cell size in pixels
	UseRGB        bool
	Profiling     bool
	RecentColors  []string // hex strings, newest first
	FirstBoot     bool
}

func (opts Options) InitDefault() *Options {
	return &Options{
		DatabasePath:  fmt.Sprintf("./colormeow-%s.db", runtime.GOOS),
		WheelSize:     200,
		TriangleSteps: 50,
		SwatchFormat:  "PNG",
		SwatchCell:    64,
		UseRGB:        false,
		Profiling:     false,
		RecentColors:  []string{},
		FirstBoot:     true,
	}
}

// AddRecentColor moves hex to the front of the recent colors list.
func (opts *Options) AddRecentColor(hex string) {
	recent := []string{hex}
	for _, c := range opts.RecentColors {
		if c != hex && len(recent) < maxRecentColors {
			recent = append(recent, c)
		}
	}
	opts.RecentColors = recent
}

func CheckOptionsExists(db *sql.DB) (bool, error) {
	// Execute SQL statement
	rows, err := db.Query("SELECT * FROM Options;")
	if err != nil {
		return false, fmt.Errorf("error executing statement: %w", err)
	}
	defer rows.Close()

	return rows.Next(), nil
}

func SaveOptionsToDB(db *sql.DB, options *Options) error {
	// Convert slice to JSON for storage
	recentJSON, err := json.Marshal(options.RecentColors)
	if err != nil {
		return fmt.Errorf("error marshaling RecentColors: %w", err)
	}

	var numOptionsDb int64
	err = db.QueryRow("SELECT COUNT(*) FROM Options").Scan(&numOptionsDb)
	if err != nil {
		return fmt.Errorf("error getting number of options: %w", err)
	}

	var query string
	switch numOptionsDb {
	case 0:
		options.FirstBoot = true
		query = `
		INSERT INTO Options (
			DatabasePath, WheelSize, TriangleSteps, SwatchFormat, SwatchCell,
			UseRGB, Profiling, RecentColors, FirstBoot, id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1);`
	case 1:
		options.FirstBoot = false
		query = `
		UPDATE Options SET
		DatabasePath = ?,
		WheelSize = ?,
		TriangleSteps = ?,
		SwatchFormat = ?,
		SwatchCell = ?,
		UseRGB = ?,
		Profiling = ?,
		RecentColors = ?,
		FirstBoot = ?
		WHERE id = 1;
		`
	default:
		return fmt.Errorf("expected at most one options row, found %d", numOptionsDb)
	}

	// Prepare SQL statement
	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	// Execute SQL statement
	_, err = stmt.Exec(
		options.DatabasePath,
		options.WheelSize,
		options.TriangleSteps,
		options.SwatchFormat,
		options.SwatchCell,
		options.UseRGB,
		options.Profiling,
		string(recentJSON),
		options.FirstBoot,
	)
	if err != nil {
		return fmt.Errorf("error executing statement: %w", err)
	}

	return nil
}

func LoadOptionsFromDB(db *sql.DB) (*Options, error) {
	options := &Options{}

	row := db.QueryRow(`
		SELECT DatabasePath, WheelSize, TriangleSteps, SwatchFormat, SwatchCell,
			   UseRGB, Profiling, RecentColors, FirstBoot
		FROM Options WHERE id = 1 LIMIT 1
	`)

	var recentJSON string

	err := row.Scan(
		&options.DatabasePath,
		&options.WheelSize,
		&options.TriangleSteps,
		&options.SwatchFormat,
		&options.SwatchCell,
		&options.UseRGB,
		&options.Profiling,
		&recentJSON,
		&options.FirstBoot,
	)
	options.FirstBoot = false
	if err != nil {
		if err == sql.ErrNoRows {
			return Options{}.InitDefault(), nil // Return default options if no row found
		}
		return nil, fmt.Errorf("error scanning row: %w", err)
	}

	// Unmarshal JSON data
	err = json.Unmarshal([]byte(recentJSON), &options.RecentColors)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling RecentColors: %w", err)
	}

	return options, nil
}
