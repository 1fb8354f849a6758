package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingName     = errors.New("file name is missing")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Accepted extension sets are explicit per call site.
var (
	ImageExts   = []string{".png", ".jpg", ".jpeg"}
	GenericExts = []string{".png", ".jpg", ".jpeg", ".gif"}
)

// File is an uploaded file as the handler layer hands it over:
// original name, declared content type and the content stream.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Store keeps files of one asset category in a single flat directory.
// Stored names are generated, never derived from the client name.
type Store struct {
	Dir              string
	BaseURL          string
	Exts             []string
	RequireImageType bool
	CleanupOnReplace bool
}

func NewStore(dir, baseURL string, exts []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{
		Dir:              dir,
		BaseURL:          strings.TrimRight(baseURL, "/"),
		Exts:             exts,
		RequireImageType: true,
		CleanupOnReplace: true,
	}, nil
}

func (s *Store) allowed(ext string) bool {
	for _, e := range s.Exts {
		if e == ext {
			return true
		}
	}
	return false
}

// Save validates the upload, writes it under a fresh uuid name and
// returns the reference to store on the owning row.
func (s *Store) Save(f *File) (string, error) {
	if f.Name == "" {
		return "", ErrMissingName
	}

	ext := strings.ToLower(filepath.Ext(f.Name))
	if !s.allowed(ext) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if s.RequireImageType && !strings.HasPrefix(f.ContentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, f.ContentType)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f.Content); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.BaseURL + "/" + name, nil
}

// Remove deletes the file a reference points at. path.Base strips any
// directory part so a stored URL and a bare name both work.
func (s *Store) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.Dir, path.Base(ref)))
}
