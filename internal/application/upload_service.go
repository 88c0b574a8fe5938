package application

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/bloggyhq/bloggy/pkg/helpers"
)

// ErrBadImageFormat is returned when a remote upload is not png/jpg/jpeg.
var ErrBadImageFormat = errors.New("unsupported image format")

// Remote storage folders, one per image kind.
const (
	BlogImgFolder = "blogImg"
	UserImgFolder = "userImg"
)

// UploadService stores multipart uploads either on local disk (served under
// /uploads) or in the remote object store, and returns a public URL.
type UploadService struct {
	GCS     *storage.Client
	Bucket  string
	Dir     string
	BaseURL string
}

func NewUploadService(gcs *storage.Client, bucket, dir, baseURL string) *UploadService {
	return &UploadService{GCS: gcs, Bucket: bucket, Dir: dir, BaseURL: baseURL}
}

// remoteConfigured reports whether the object store can be used.
func (s *UploadService) remoteConfigured() bool {
	return s.GCS != nil && s.Bucket != ""
}

// Local writes the file into the uploads directory under a generated unique
// name and returns the URL it is served from.
func (s *UploadService) Local(fh *multipart.FileHeader, fieldname string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := helpers.UniqueFilename(fieldname, fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return s.BaseURL + "/uploads/" + name, nil
}

// Remote uploads the file to the object store under the given folder,
// restricted to png/jpg/jpeg, and returns the provider URL.
func (s *UploadService) Remote(ctx context.Context, fh *multipart.FileHeader, fieldname, folder string) (string, error) {
	if !s.remoteConfigured() {
		return "", errors.New("object storage not configured")
	}
	if !helpers.IsAllowedImage(fh.Filename) {
		return "", ErrBadImageFormat
	}
	name := helpers.UniqueFilename(fieldname, fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	objectPath := folder + "/" + name
	return helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, helpers.ContentTypeForImage(fh.Filename), src)
}

// Store picks the remote object store when configured and falls back to
// local disk otherwise.
func (s *UploadService) Store(ctx context.Context, fh *multipart.FileHeader, fieldname, folder string) (string, error) {
	if s.remoteConfigured() {
		return s.Remote(ctx, fh, fieldname, folder)
	}
	return s.Local(fh, fieldname)
}
