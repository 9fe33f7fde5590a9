package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func stagePNG(t *testing.T, root, name string, width, height int) UploadedFile {
	t.Helper()

	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, pngBytes(t, width, height), 0o644))
	return UploadedFile{
		OriginalName: name,
		TempPath:     path,
		Ext:          ".png",
	}
}

func decodeOutput(t *testing.T, path string) image.Image {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := webp.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestTranscoder_ProducesWebpAndDeletesOriginal(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	staged := stagePNG(t, root, "shirt-123-abcd1234.png", 10, 10)

	descriptors, err := tr.TranscodeAll(context.Background(), []UploadedFile{staged})
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := descriptors[0]
	assert.Equal(t, "/uploads/products/shirt-123-abcd1234.webp", d.URL)
	assert.Equal(t, "", d.Alt)
	assert.False(t, d.IsPrimary)

	assert.NoFileExists(t, staged.TempPath)

	out := decodeOutput(t, filepath.Join(root, "shirt-123-abcd1234.webp"))
	assert.Equal(t, 10, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
}

func TestTranscoder_BoundsLargeImagesPreservingAspect(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	staged := stagePNG(t, root, "banner-1-x.png", 2000, 500)

	_, err := tr.TranscodeAll(context.Background(), []UploadedFile{staged})
	require.NoError(t, err)

	out := decodeOutput(t, filepath.Join(root, "banner-1-x.webp"))
	assert.Equal(t, 1600, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())
}

func TestTranscoder_NeverUpscales(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	staged := stagePNG(t, root, "thumb-1-x.png", 320, 240)

	_, err := tr.TranscodeAll(context.Background(), []UploadedFile{staged})
	require.NoError(t, err)

	out := decodeOutput(t, filepath.Join(root, "thumb-1-x.webp"))
	assert.Equal(t, 320, out.Bounds().Dx())
	assert.Equal(t, 240, out.Bounds().Dy())
}

func TestTranscoder_KeepsSubmissionOrder(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	staged := []UploadedFile{
		stagePNG(t, root, "first-1-a.png", 4, 4),
		stagePNG(t, root, "second-1-b.png", 4, 4),
		stagePNG(t, root, "third-1-c.png", 4, 4),
	}

	descriptors, err := tr.TranscodeAll(context.Background(), staged)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	assert.True(t, strings.HasSuffix(descriptors[0].URL, "first-1-a.webp"))
	assert.True(t, strings.HasSuffix(descriptors[1].URL, "second-1-b.webp"))
	assert.True(t, strings.HasSuffix(descriptors[2].URL, "third-1-c.webp"))
}

func TestTranscoder_CorruptFileFailsBatch(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	good := stagePNG(t, root, "good-1-a.png", 4, 4)
	corruptPath := filepath.Join(root, "corrupt-1-b.png")
	require.NoError(t, os.WriteFile(corruptPath, []byte("not an image"), 0o644))
	corrupt := UploadedFile{OriginalName: "corrupt.png", TempPath: corruptPath, Ext: ".png"}

	descriptors, err := tr.TranscodeAll(context.Background(), []UploadedFile{good, corrupt})
	assert.ErrorIs(t, err, ErrTranscode)
	assert.Nil(t, descriptors)
	assert.False(t, IsValidation(err))

	// The good file was already processed: output present, original gone.
	assert.FileExists(t, filepath.Join(root, "good-1-a.webp"))
	assert.NoFileExists(t, good.TempPath)
	// The corrupt original is still staged for the caller to clean up.
	assert.FileExists(t, corruptPath)
}

func TestTranscoder_HonorsContextCancellation(t *testing.T) {
	root := t.TempDir()
	tr := NewTranscoder(root, "/uploads/products")

	staged := stagePNG(t, root, "slow-1-a.png", 4, 4)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := tr.TranscodeAll(ctx, []UploadedFile{staged})
	assert.ErrorIs(t, err, ErrTranscode)
}
