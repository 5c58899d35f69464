package domain

import (
	"errors"

	"github.com/x-xyz/swiftbid/base/ctx"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

// WebResourceWriterRepository stores a blob under path and returns its public url
type WebResourceWriterRepository interface {
	Store(c ctx.Ctx, path string, body []byte, contentType string) (string, error)
}

// ImageUseCase validates and stores listing images
type ImageUseCase interface {
	// Upload sniffs the content type of body, rejects non images and returns the public url
	Upload(c ctx.Ctx, folder string, body []byte) (string, error)
}
