package contract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// IAvatarStorage stores profile pictures as binary blobs.
type IAvatarStorage interface {
	UploadAvatar(ctx context.Context, ownerID uint64, filename, contentType string, content io.Reader) (*entity.Avatar, error)
	OpenAvatar(ctx context.Context, id string) (io.ReadCloser, *entity.Avatar, error)
	DeleteAvatar(ctx context.Context, id string) error
}
