package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStorage stores uploaded tweet images and hands back a reference
// that can later be deleted or turned into a retrievable URL.
type MediaStorage interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(path string) error
	URL(path string) string
}

// LocalStorage keeps uploads on the local filesystem under a single
// directory, served as static files by the router.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes the upload under a random filename, keeping the original
// extension, and returns the generated name.
func (ls *LocalStorage) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(ls.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

func (ls *LocalStorage) Delete(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(ls.dir, path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (ls *LocalStorage) URL(path string) string {
	if path == "" {
		return ""
	}
	return ls.baseURL + "/" + path
}
