package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"resto/config"
	"resto/infras/otel"
	"resto/infras/s3"
	"resto/internal/domains/media/model/dto"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/validator"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

const (
	dirImages     = "images"
	dirThumbnails = "thumbnails"
	dirVideos     = "videos"

	thumbnailSize    = 480
	thumbnailQuality = 80
)

type Media interface {
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	UploadVideo(ctx context.Context, req dto.UploadVideoRequest) (dto.UploadVideoResponse, error)
	Delete(ctx context.Context, req dto.DeleteRequest) error
	Discard(ctx context.Context, urls ...string)
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(cfg *config.Config, otel otel.Otel, s3 s3.S3) Media {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

// UploadImage stores the image and a JPEG thumbnail that fits in a 480x480 box.
func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	data, err := readAll(req.File, dto.ImageMaxSizeMB)
	if err != nil {
		return res, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return res, failure.BadRequestFromString("image could not be decoded")
	}

	thumbnail, err := encodeThumbnail(img)
	if err != nil {
		return res, fmt.Errorf("failed to create thumbnail: %w", err)
	}

	name := uuid.NewString()
	bucket := s.cfg.External.S3.BucketName

	res.URL, err = s.s3.UploadFileBytes(ctx, bucket, dirImages, name+dto.Extension(req.Header.Filename, req.ContentType), req.ContentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	res.ThumbnailURL, err = s.s3.UploadFileBytes(ctx, bucket, dirThumbnails, name+".jpg", constant.ContentTypeJPEG, thumbnail)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload thumbnail")

		s.Discard(ctx, res.URL)

		return dto.UploadImageResponse{}, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) UploadVideo(ctx context.Context, req dto.UploadVideoRequest) (res dto.UploadVideoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.UploadVideo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	data, err := readAll(req.File, dto.VideoMaxSizeMB)
	if err != nil {
		return res, err
	}

	fileName := uuid.NewString() + dto.Extension(req.Header.Filename, req.ContentType)

	res.URL, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, dirVideos, fileName, req.ContentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload video")

		return res, fmt.Errorf("failed to upload video: %w", err)
	}

	return res, nil
}

// Delete removes the objects behind the given URLs. URLs that do not point into the bucket are rejected.
func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Media.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := s.cfg.External.S3.BucketName
	keys := make([]string, len(req.URLs))

	for i, url := range req.URLs {
		keys[i] = s.s3.GetObjectKeyFromURL(bucket, url)
		if keys[i] == constant.Empty {
			return failure.BadRequestFromString(fmt.Sprintf("%s is not a stored media url", url))
		}
	}

	for _, key := range keys {
		if err = s.s3.DeleteFile(ctx, bucket, key); err != nil {
			return fmt.Errorf("failed to delete media: %w", err)
		}
	}

	return nil
}

// Discard deletes stored objects in the background. Unknown URLs and failures are only logged.
func (s *serviceImpl) Discard(ctx context.Context, urls ...string) {
	if len(urls) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)
		bucket := s.cfg.External.S3.BucketName

		for _, url := range urls {
			key := s.s3.GetObjectKeyFromURL(bucket, url)
			if key == constant.Empty {
				continue
			}

			if err := s.s3.DeleteFile(c, bucket, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to discard media")
			}
		}
	}()
}

func readAll(file io.Reader, maxSizeMB int64) ([]byte, error) {
	if file == nil {
		return nil, failure.BadRequestFromString("file is required")
	}

	limit := maxSizeMB << 20

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, failure.BadRequestFromString(fmt.Sprintf("file must not exceed %d MB", maxSizeMB))
	}

	return data, nil
}

func encodeThumbnail(img image.Image) ([]byte, error) {
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
