package upload

import "errors"

var (
	ErrNoFiles      = errors.New("no image files were uploaded")
	ErrTooManyFiles = errors.New("too many files: at most 6 images per upload")
	ErrFileTooLarge = errors.New("file exceeds the 5 MiB size limit")
	ErrBadExtension = errors.New("only image files are allowed")
	ErrStore        = errors.New("failed to store uploaded file")
	ErrTranscode    = errors.New("image processing failed")
)

// IsValidation reports whether err is the client's fault (bad count, size
// or type) as opposed to a processing failure on our side.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrTooManyFiles) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrBadExtension)
}
