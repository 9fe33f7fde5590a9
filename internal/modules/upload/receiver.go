package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxFiles    = 6
	MaxFileSize = 5 << 20 // 5 MiB per file
)

// AllowedExtensions is the case-insensitive whitelist for incoming files.
var AllowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// UploadedFile is one accepted multipart file staged on disk, waiting to
// be transcoded. The pipeline invocation that created it owns it
// exclusively and deletes it when done.
type UploadedFile struct {
	OriginalName string
	TempPath     string
	Size         int64
	Ext          string // lowercased, includes the dot
}

// Receiver validates a multipart batch and stages accepted files under
// the upload root. Acceptance is all-or-nothing: one bad file rejects the
// whole batch before anything touches disk.
type Receiver struct {
	root string
}

func NewReceiver(root string) (*Receiver, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &Receiver{root: root}, nil
}

// Receive enforces the count/size/extension constraints and writes each
// accepted part to a temporary file. If a disk write fails partway, the
// files staged so far are removed before returning.
func (r *Receiver) Receive(files []*multipart.FileHeader) ([]UploadedFile, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > MaxFiles {
		return nil, ErrTooManyFiles
	}

	for _, fh := range files {
		if fh.Size > MaxFileSize {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !AllowedExtensions[ext] {
			return nil, fmt.Errorf("%w: %s", ErrBadExtension, fh.Filename)
		}
	}

	accepted := make([]UploadedFile, 0, len(files))
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		name := tempName(fh.Filename, ext)
		dst := filepath.Join(r.root, name)

		if err := saveFile(fh, dst); err != nil {
			Cleanup(accepted)
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}

		accepted = append(accepted, UploadedFile{
			OriginalName: fh.Filename,
			TempPath:     dst,
			Size:         fh.Size,
			Ext:          ext,
		})
	}

	return accepted, nil
}

// Cleanup removes any staged originals that still exist. Missing files
// are fine: the transcoder deletes originals as it goes.
func Cleanup(files []UploadedFile) {
	for _, f := range files {
		_ = os.Remove(f.TempPath)
	}
}

// tempName builds "{sanitized-base}-{unixmilli}-{suffix}{ext}". The
// timestamp keeps repeated uploads of the same file apart; the uuid
// suffix closes the same-millisecond collision window the timestamp
// alone leaves open.
func tempName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = whitespaceRun.ReplaceAllString(base, "-")
	if base == "" {
		base = "image"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), suffix, ext)
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
