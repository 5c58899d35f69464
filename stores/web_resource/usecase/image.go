package usecase

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	bCtx "github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
)

const defaultMaxImageSize = 5 << 20

type ImageUseCaseCfg struct {
	Writer domain.WebResourceWriterRepository
	// MaxSize in bytes, 5MB when zero
	MaxSize int
}

type imageUseCase struct {
	writer  domain.WebResourceWriterRepository
	maxSize int
}

func NewImageUseCase(cfg *ImageUseCaseCfg) domain.ImageUseCase {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxImageSize
	}
	return &imageUseCase{
		writer:  cfg.Writer,
		maxSize: maxSize,
	}
}

func (u *imageUseCase) Upload(c bCtx.Ctx, folder string, body []byte) (string, error) {
	if len(body) == 0 || len(body) > u.maxSize {
		return "", domain.ErrBadParamInput
	}

	mime := mimetype.Detect(body)
	if !strings.HasPrefix(mime.String(), "image/") {
		c.WithField("mime", mime.String()).Warn("rejecting non image upload")
		return "", domain.ErrUnsupportedContentType
	}

	_path := path.Join(folder, uuid.NewString()+mime.Extension())
	url, err := u.writer.Store(c, _path, body, mime.String())
	if err != nil {
		c.WithFields(log.Fields{
			"path": _path,
			"err":  err,
		}).Error("writer.Store failed")
		return "", err
	}
	return url, nil
}
