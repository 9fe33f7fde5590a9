package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoding

	"berrystore/internal/domain"
)

const (
	// MaxDimension bounds both axes of a transcoded image. Smaller
	// images are never upscaled.
	MaxDimension = 1600
	// Quality is the lossy webp quality of transcoded outputs.
	Quality = 80
)

// Transcoder normalizes staged originals into web-ready webp files in
// the upload root and deletes each original once its output is written.
type Transcoder struct {
	root       string
	publicBase string // URL prefix descriptors point at, e.g. /uploads/products
}

func NewTranscoder(root, publicBase string) *Transcoder {
	return &Transcoder{root: root, publicBase: strings.TrimSuffix(publicBase, "/")}
}

// TranscodeAll processes files sequentially in submission order and
// returns one descriptor per file, in the same order. The first failure
// aborts the batch: outputs already written stay on disk, originals not
// yet processed stay staged (the caller cleans those up).
func (t *Transcoder) TranscodeAll(ctx context.Context, files []UploadedFile) ([]domain.ImageDescriptor, error) {
	descriptors := make([]domain.ImageDescriptor, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTranscode, err)
		}

		name, err := t.transcode(f)
		if err != nil {
			return nil, err
		}

		descriptors = append(descriptors, domain.ImageDescriptor{
			URL:       t.publicBase + "/" + name,
			Alt:       "",
			IsPrimary: false,
		})
	}
	return descriptors, nil
}

// transcode re-orients one original, bounds it to MaxDimension and
// re-encodes it as webp under the same base name. Returns the output
// file name.
func (t *Transcoder) transcode(f UploadedFile) (string, error) {
	img, err := imaging.Open(f.TempPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: decode %s: %v", ErrTranscode, f.OriginalName, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	base := strings.TrimSuffix(filepath.Base(f.TempPath), f.Ext)
	name := base + ".webp"
	outPath := filepath.Join(t.root, name)

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrTranscode, name, err)
	}
	if err := webp.Encode(out, img, &webp.Options{Quality: Quality}); err != nil {
		out.Close()
		_ = os.Remove(outPath)
		return "", fmt.Errorf("%w: encode %s: %v", ErrTranscode, f.OriginalName, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrTranscode, name, err)
	}

	// The original is gone as soon as its output exists.
	_ = os.Remove(f.TempPath)

	return name, nil
}
