package upload

import (
	"context"
	"mime/multipart"
	"time"

	"berrystore/internal/domain"
)

// Service runs the validate -> stage -> transcode pipeline for one
// request. Each invocation owns its staged files; nothing is shared
// between concurrent requests except the upload root directory.
type Service struct {
	receiver   *Receiver
	transcoder *Transcoder
	timeout    time.Duration
}

func NewService(receiver *Receiver, transcoder *Transcoder, timeout time.Duration) *Service {
	return &Service{
		receiver:   receiver,
		transcoder: transcoder,
		timeout:    timeout,
	}
}

// Process validates and stages the batch, then transcodes sequentially.
// On transcoding failure the remaining staged originals are removed;
// outputs produced before the failure stay on disk but no descriptors
// are returned for them.
func (s *Service) Process(ctx context.Context, files []*multipart.FileHeader) ([]domain.ImageDescriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	accepted, err := s.receiver.Receive(files)
	if err != nil {
		return nil, err
	}

	descriptors, err := s.transcoder.TranscodeAll(ctx, accepted)
	if err != nil {
		Cleanup(accepted)
		return nil, err
	}

	return descriptors, nil
}
