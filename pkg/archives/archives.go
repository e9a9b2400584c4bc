package archives

import (
	"archive/tar"
	"bytes"
	"colormeow/pkg/logger"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/alexmullins/zip"
	"github.com/dsnet/compress/bzip2"
)

var appLogger = logger.InitLogger()

var (
	ErrNoFiles          = errors.New("no files to archive")
	ErrPasswordRequired = errors.New("password required")
	ErrUnknownArchive   = errors.New("unknown archive format")
	ErrEntryNotFound    = errors.New("entry not found in archive")
)

// Format is an archive container.
type Format string

const (
	FormatZip            Format = "zip"
	FormatEncryptedZip   Format = "zip (password)"
	FormatTarGzip        Format = "tar.gz"
	FormatTarBzip2       Format = "tar.bz2"
	FormatEncryptedTarGz Format = "tar.gz (password)"
)

// Formats lists every format in the order the export chooser offers them.
var Formats = []Format{FormatZip, FormatEncryptedZip, FormatTarGzip, FormatTarBzip2, FormatEncryptedTarGz}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	switch f {
	case FormatZip, FormatEncryptedZip:
		return ".zip"
	case FormatTarBzip2:
		return ".tar.bz2"
	default:
		return ".tar.gz"
	}
}

// Encrypted reports whether the format needs a password.
func (f Format) Encrypted() bool {
	return f == FormatEncryptedZip || f == FormatEncryptedTarGz
}

// FormatForPath guesses the container from a file name.
func FormatForPath(p string) (Format, error) {
	lower := strings.ToLower(p)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGzip, nil
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"):
		return FormatTarBzip2, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownArchive, p)
}

// Entry is a file stored in an archive.
type Entry struct {
	Name string
	Data []byte
}

// Create writes the entries to a new archive file at archivePath.
func Create(archivePath string, format Format, entries []Entry, password string) error {
	archive, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer archive.Close()

	if err := Write(archive, format, entries, password); err != nil {
		return err
	}

	// Ensure archive is closed properly
	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}

	// Verify the archive is not empty
	info, err := os.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("failed to stat archive file: %w", err)
	}

	appLogger.Printf("Archive created successfully at %s with size %d bytes\n", archivePath, info.Size())
	return nil
}

// Write streams the entries to w in the given format.
func Write(w io.Writer, format Format, entries []Entry, password string) error {
	if len(entries) == 0 {
		return ErrNoFiles
	}
	if format.Encrypted() && password == "" {
		return ErrPasswordRequired
	}

	switch format {
	case FormatZip, FormatEncryptedZip:
		return writeZip(w, entries, password)
	case FormatTarGzip:
		return writeTarGzip(w, entries, "")
	case FormatEncryptedTarGz:
		return writeTarGzip(w, entries, password)
	case FormatTarBzip2:
		return writeTarBzip2(w, entries)
	}
	return fmt.Errorf("%w: %s", ErrUnknownArchive, format)
}

func writeZip(w io.Writer, entries []Entry, password string) error {
	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		header.SetModTime(time.Now())
		if password != "" {
			header.SetPassword(password)
		}

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to write zip header for %s: %w", entry.Name, err)
		}
		if _, err := writer.Write(entry.Data); err != nil {
			return fmt.Errorf("failed to write file content for %s: %w", entry.Name, err)
		}
	}

	// Ensure zipWriter is closed properly
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

func writeTarGzip(w io.Writer, entries []Entry, password string) error {
	gzipWriter := gzip.NewWriter(w)
	defer gzipWriter.Close()

	if err := writeTar(gzipWriter, entries, password); err != nil {
		return err
	}

	// Ensure gzipWriter is closed properly
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

func writeTarBzip2(w io.Writer, entries []Entry) error {
	bzipWriter, err := bzip2.NewWriter(w, &bzip2.WriterConfig{
		Level: bzip2.BestCompression,
	})
	if err != nil {
		return fmt.Errorf("failed to create bzip2 writer: %w", err)
	}
	defer bzipWriter.Close()

	if err := writeTar(bzipWriter, entries, ""); err != nil {
		return err
	}

	// Ensure bzipWriter is closed properly
	if err := bzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close bzip2 writer: %w", err)
	}
	return nil
}

func writeTar(w io.Writer, entries []Entry, password string) error {
	tarWriter := tar.NewWriter(w)
	defer tarWriter.Close()

	for _, entry := range entries {
		data := entry.Data
		if password != "" {
			sealed, err := seal(data, password)
			if err != nil {
				return fmt.Errorf("failed to encrypt %s: %w", entry.Name, err)
			}
			data = sealed
		}

		header := &tar.Header{
			Name:    entry.Name,
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: time.Now(),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", entry.Name, err)
		}
		if _, err := tarWriter.Write(data); err != nil {
			return fmt.Errorf("failed to write file content for %s: %w", entry.Name, err)
		}
	}

	// Ensure tarWriter is closed properly
	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("failed to close tar writer: %w", err)
	}
	return nil
}

func newGCM(password string) (cipher.AEAD, error) {
	hashedPass := sha256.Sum256([]byte(password))

	block, err := aes.NewCipher(hashedPass[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// seal encrypts data with AES-GCM keyed by the password hash. The nonce is
// prepended to the ciphertext.
func seal(data []byte, password string) ([]byte, error) {
	gcm, err := newGCM(password)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, data, nil), nil
}

func open(data []byte, password string) ([]byte, error) {
	gcm, err := newGCM(password)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("encrypted entry too short")
	}
	nonce, cipherText := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plain, nil
}

// ReadFile returns the named entry of the archive at archivePath. The
// container is chosen from the file name; encrypted entries need password.
func ReadFile(archivePath, name, password string) ([]byte, error) {
	format, err := FormatForPath(archivePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return Read(data, format, name, password)
}

// Read returns the named entry from archive bytes.
func Read(data []byte, format Format, name, password string) ([]byte, error) {
	switch format {
	case FormatZip, FormatEncryptedZip:
		return readZip(data, name, password)
	case FormatTarGzip, FormatEncryptedTarGz:
		gzipReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip: %w", err)
		}
		defer gzipReader.Close()
		return readTar(gzipReader, name, password)
	case FormatTarBzip2:
		bzipReader, err := bzip2.NewReader(bytes.NewReader(data), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to open bzip2: %w", err)
		}
		defer bzipReader.Close()
		return readTar(bzipReader, name, password)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownArchive, format)
}

func readZip(data []byte, name, password string) ([]byte, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	for _, file := range zipReader.File {
		if path.Clean(file.Name) != name {
			continue
		}
		if file.IsEncrypted() {
			if password == "" {
				return nil, ErrPasswordRequired
			}
			file.SetPassword(password)
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

func readTar(r io.Reader, name, password string) ([]byte, error) {
	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar: %w", err)
		}
		if path.Clean(header.Name) != name {
			continue
		}

		content, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if password != "" {
			return open(content, password)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}
