package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/parathan/blog-core/internal/config"
)

// maxImageWidth is the width uploads are scaled down to before storing.
const maxImageWidth = 1920

// Local writes uploads to a directory served by the API itself.
type Local struct {
	dir    string
	appURL string
}

func newLocal(cfg *config.Config) (*Local, error) {
	dir, err := filepath.Abs(cfg.Storage.Local.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, appURL: cfg.AppURL}, nil
}

func (l *Local) Upload(ctx context.Context, file File) (Object, error) {
	key := buildKey(file.Folder, file.Name)

	data := file.Data
	if resized, ok := resizeImage(data, keyFormat(key)); ok {
		data = resized
	}

	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Object{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Object{}, fmt.Errorf("write upload: %w", err)
	}

	return Object{
		URL:    l.URL(key),
		Key:    key,
		Size:   int64(len(data)),
		Format: keyFormat(key),
	}, nil
}

func (l *Local) Delete(ctx context.Context, key string) (bool, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return false, fmt.Errorf("invalid object key %q", key)
	}
	err := os.Remove(filepath.Join(l.dir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) URL(key string) string {
	return l.appURL + "/uploads/" + strings.TrimPrefix(key, "/")
}

// Dir returns the directory uploads are written to, for static serving.
func (l *Local) Dir() string { return l.dir }

// resizeImage scales oversized images down to maxImageWidth and re-encodes
// them. It reports false when the data is not a resizable image or decoding
// fails, in which case the original bytes should be stored as-is.
func resizeImage(data []byte, format string) ([]byte, bool) {
	switch format {
	case "jpg", "jpeg", "png", "gif":
	default:
		return nil, false
	}

	img, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageWidth {
		return nil, false
	}

	// animated gifs are stored untouched, re-encoding would drop frames
	if kind == "gif" {
		if g, err := gif.DecodeAll(bytes.NewReader(data)); err == nil && len(g.Image) > 1 {
			return nil, false
		}
	}

	height := bounds.Dy() * maxImageWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	switch kind {
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
