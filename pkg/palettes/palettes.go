// Package palettes stores named color palettes in sqlite and moves them in
// and out as JSON.
package palettes

import (
	"bytes"
	"colormeow/pkg/colorutils"
	"colormeow/pkg/logger"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

var appLogger = logger.InitLogger()

var (
	ErrPaletteNotFound    = errors.New("palette not found")
	ErrInvalidPaletteData = errors.New("invalid palette data")
	ErrColorIndex         = errors.New("color index out of range")
)

type Palette struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Colors      []colorutils.ColorRecord `json:"colors"`
	CreatedAt   *time.Time               `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time               `json:"updatedAt,omitempty"`
	ImportedAt  *time.Time               `json:"importedAt,omitempty"`
}

// LastModified returns the newest timestamp of the palette, or the zero time.
func (p Palette) LastModified() time.Time {
	var latest time.Time
	for _, t := range []*time.Time{p.CreatedAt, p.UpdatedAt, p.ImportedAt} {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	return latest
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore uses a database opened with database.Open.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// NewID returns a unique palette id: unix millis followed by a base36 suffix.
func (s *Store) NewID() string {
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return strconv.FormatInt(s.now().UnixMilli(), 10) + suffix
}

const selectPalettes = "SELECT id, name, description, colors, createdAt, updatedAt, importedAt FROM Palette"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPalette(row rowScanner) (Palette, error) {
	var p Palette
	var colorsJSON, created, updated, imported string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &colorsJSON, &created, &updated, &imported); err != nil {
		return Palette{}, err
	}
	if err := json.Unmarshal([]byte(colorsJSON), &p.Colors); err != nil {
		return Palette{}, fmt.Errorf("error unmarshaling colors of %s: %w", p.ID, err)
	}
	if p.Colors == nil {
		p.Colors = []colorutils.ColorRecord{}
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	p.ImportedAt = parseTime(imported)
	return p, nil
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		appLogger.Println("Ignoring malformed timestamp: ", s)
		return nil
	}
	return &t
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// List returns every palette in insertion order.
func (s *Store) List() ([]Palette, error) {
	return s.query(selectPalettes + " ORDER BY seq")
}

// SearchByName returns palettes whose name contains query, ignoring case.
// Matching runs in Go because sqlite's LIKE and lower() only fold ASCII and
// LIKE treats % and _ as wildcards.
func (s *Store) SearchByName(query string) ([]Palette, error) {
	all, err := s.List()
	if err != nil || query == "" {
		return all, err
	}

	needle := strings.ToLower(query)
	found := []Palette{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			found = append(found, p)
		}
	}
	return found, nil
}

func (s *Store) query(q string, args ...any) ([]Palette, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		appLogger.Println("Error getting palettes:", err)
		return nil, fmt.Errorf("error getting palettes: %w", err)
	}
	defer rows.Close()

	palettes := []Palette{}
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return palettes, nil
}

// Get returns the palette with the given id or ErrPaletteNotFound.
func (s *Store) Get(id string) (*Palette, error) {
	p, err := scanPalette(s.db.QueryRow(selectPalettes+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPaletteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting palette %s: %w", id, err)
	}
	return &p, nil
}

// Save stores p. A palette without an id gets a new id and creation time and
// is appended; a known id is replaced in place with a fresh update time; an
// unknown id is appended as given.
func (s *Store) Save(p *Palette) error {
	if p.Colors == nil {
		p.Colors = []colorutils.ColorRecord{}
	}
	now := s.now()

	if p.ID == "" {
		p.ID = s.NewID()
		p.CreatedAt = &now
		return s.insert(s.db, p)
	}

	var exists int
	err := s.db.QueryRow("SELECT 1 FROM Palette WHERE id = ?", p.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.insert(s.db, p)
	case err != nil:
		return fmt.Errorf("error looking up palette %s: %w", p.ID, err)
	}

	p.UpdatedAt = &now
	colorsJSON, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("error marshaling colors: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE Palette SET
		name = ?,
		description = ?,
		colors = ?,
		createdAt = ?,
		updatedAt = ?,
		importedAt = ?
		WHERE id = ?;`,
		p.Name, p.Description, string(colorsJSON),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt), formatTime(p.ImportedAt), p.ID)
	if err != nil {
		appLogger.Println("Error updating palette:", err)
		return fmt.Errorf("error updating palette %s: %w", p.ID, err)
	}
	return nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *Store) insert(db execer, p *Palette) error {
	colorsJSON, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("error marshaling colors: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO Palette (id, name, description, colors, createdAt, updatedAt, importedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?);`,
		p.ID, p.Name, p.Description, string(colorsJSON),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt), formatTime(p.ImportedAt))
	if err != nil {
		appLogger.Println("Error inserting palette:", err)
		return fmt.Errorf("error inserting palette %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes the palette with the given id. Unknown ids are not an error.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM Palette WHERE id = ?", id); err != nil {
		appLogger.Println("Error deleting palette:", err)
		return fmt.Errorf("error deleting palette %s: %w", id, err)
	}
	return nil
}

// AddColor appends c to the palette's colors.
func (s *Store) AddColor(id string, c colorutils.ColorRecord) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	p.Colors = append(p.Colors, c)
	return s.Save(p)
}

// RemoveColor drops the color at index from the palette.
func (s *Store) RemoveColor(id string, index int) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(p.Colors) {
		return fmt.Errorf("%w: %d", ErrColorIndex, index)
	}
	p.Colors = append(p.Colors[:index], p.Colors[index+1:]...)
	return s.Save(p)
}

// ExportAll returns every palette as an indented JSON array.
func (s *Store) ExportAll() (string, error) {
	palettes, err := s.List()
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(palettes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling palettes: %w", err)
	}
	return string(data), nil
}

// ParsePalettes decodes a JSON array of palettes.
func ParsePalettes(text string) ([]Palette, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidPaletteData)
	}
	var palettes []Palette
	if err := json.Unmarshal(trimmed, &palettes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPaletteData, err)
	}
	return palettes, nil
}

// ImportAll loads palettes from JSON text. With merge the palettes are
// appended under fresh ids and stamped with the import time; otherwise they
// replace everything stored.
func (s *Store) ImportAll(text string, merge bool) error {
	imported, err := ParsePalettes(text)
	if err != nil {
		appLogger.Println("Error importing palettes:", err)
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting import: %w", err)
	}
	defer tx.Rollback()

	if !merge {
		if _, err := tx.Exec("DELETE FROM Palette"); err != nil {
			return fmt.Errorf("error clearing palettes: %w", err)
		}
	}

	now := s.now()
	seen := map[string]bool{}
	for i := range imported {
		p := &imported[i]
		if p.Colors == nil {
			p.Colors = []colorutils.ColorRecord{}
		}
		if merge {
			p.ID = s.NewID()
			p.ImportedAt = &now
		}
		for p.ID == "" || seen[p.ID] {
			p.ID = s.NewID()
		}
		seen[p.ID] = true

		if err := s.insert(tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing import: %w", err)
	}
	appLogger.Println("Imported ", len(imported), " palettes.")
	return nil
}
