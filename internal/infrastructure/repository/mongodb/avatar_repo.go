package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// AvatarRepository stores profile pictures in a GridFS bucket.
type AvatarRepository struct {
	bucket *gridfs.Bucket
	uuids  contract.IUUIDGenerator
}

var _ contract.IAvatarStorage = (*AvatarRepository)(nil)

func NewAvatarRepository(bucket *gridfs.Bucket, uuids contract.IUUIDGenerator) *AvatarRepository {
	return &AvatarRepository{bucket: bucket, uuids: uuids}
}

type avatarMetadata struct {
	OwnerID      uint64    `bson:"owner_id"`
	ContentType  string    `bson:"content_type"`
	OriginalName string    `bson:"original_name"`
	UploadedAt   time.Time `bson:"uploaded_at"`
}

// storedName keeps the extension of the upload and replaces the rest with a uuid.
func (r *AvatarRepository) storedName(filename string) string {
	return "avatars/" + r.uuids.NewUUID() + path.Ext(filename)
}

func (r *AvatarRepository) UploadAvatar(ctx context.Context, ownerID uint64, filename, contentType string, content io.Reader) (*entity.Avatar, error) {
	meta := avatarMetadata{
		OwnerID:      ownerID,
		ContentType:  contentType,
		OriginalName: filename,
		UploadedAt:   time.Now().UTC(),
	}
	name := r.storedName(filename)
	stream, err := r.bucket.OpenUploadStream(name, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return nil, fmt.Errorf("avatar upload failed: %w", err)
	}
	size, err := io.Copy(stream, content)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("avatar copy failed: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("avatar upload failed: %w", err)
	}

	oid, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected GridFS file id type %T", stream.FileID)
	}
	return &entity.Avatar{
		ID:          oid.Hex(),
		Filename:    name,
		ContentType: contentType,
		Size:        size,
		OwnerID:     ownerID,
		UploadedAt:  meta.UploadedAt,
	}, nil
}

// OpenAvatar returns a stream the caller must close.
func (r *AvatarRepository) OpenAvatar(ctx context.Context, id string) (io.ReadCloser, *entity.Avatar, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, entity.ErrNotFound
	}
	stream, err := r.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, entity.ErrNotFound
		}
		return nil, nil, fmt.Errorf("avatar download failed: %w", err)
	}
	avatar, err := avatarFromFile(stream.GetFile())
	if err != nil {
		_ = stream.Close()
		return nil, nil, err
	}
	return stream, avatar, nil
}

func (r *AvatarRepository) DeleteAvatar(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity.ErrNotFound
	}
	if err := r.bucket.DeleteContext(ctx, oid); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return entity.ErrNotFound
		}
		return fmt.Errorf("avatar delete failed: %w", err)
	}
	return nil
}

func avatarFromFile(file *gridfs.File) (*entity.Avatar, error) {
	avatar := &entity.Avatar{
		Filename:   file.Name,
		Size:       file.Length,
		UploadedAt: file.UploadDate,
	}
	if oid, ok := file.ID.(primitive.ObjectID); ok {
		avatar.ID = oid.Hex()
	}
	if len(file.Metadata) > 0 {
		var meta avatarMetadata
		if err := bson.Unmarshal(file.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("corrupt avatar metadata: %w", err)
		}
		avatar.OwnerID = meta.OwnerID
		avatar.ContentType = meta.ContentType
	}
	if avatar.ContentType == "" {
		avatar.ContentType = "application/octet-stream"
	}
	return avatar, nil
}
