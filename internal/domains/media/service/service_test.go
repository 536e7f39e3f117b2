package service_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	s3Mocks "resto/infras/s3/mocks"
	"resto/internal/domains/media/model/dto"
	"resto/internal/domains/media/service"
	"resto/shared/failure"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error {
	return nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})

	assert.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	return buf.Bytes()
}

func newService(t *testing.T) (service.Media, *s3Mocks.MockS3) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "resto"

	mockS3 := s3Mocks.NewMockS3(ctrl)

	return service.New(cfg, mocks.NewOtel(), mockS3), mockS3
}

func imageRequest(data []byte, filename, contentType string) dto.UploadImageRequest {
	return dto.UploadImageRequest{
		File:        memFile{bytes.NewReader(data)},
		Header:      &multipart.FileHeader{Filename: filename, Size: int64(len(data))},
		ContentType: contentType,
		Size:        int64(len(data)),
	}
}

func TestMediaService_UploadImage(t *testing.T) {
	t.Run("stores image and thumbnail", func(t *testing.T) {
		svc, mockS3 := newService(t)
		data := pngBytes(t, 1200, 600)

		mockS3.EXPECT().UploadFileBytes(gomock.Any(), "resto", "images", gomock.Any(), "image/png", data).
			Return("https://cdn.example.com/images/a.png", nil)
		mockS3.EXPECT().UploadFileBytes(gomock.Any(), "resto", "thumbnails", gomock.Any(), "image/jpeg", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, thumb []byte) (string, error) {
				img, err := imaging.Decode(bytes.NewReader(thumb))
				assert.NoError(t, err)
				assert.Equal(t, 480, img.Bounds().Dx())
				assert.Equal(t, 240, img.Bounds().Dy())
				assert.Contains(t, fileName, ".jpg")

				return "https://cdn.example.com/thumbnails/a.jpg", nil
			})

		res, err := svc.UploadImage(context.Background(), imageRequest(data, "dish.png", "image/png"))

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/images/a.png", res.URL)
		assert.Equal(t, "https://cdn.example.com/thumbnails/a.jpg", res.ThumbnailURL)
	})

	t.Run("thumbnail failure discards the image", func(t *testing.T) {
		svc, mockS3 := newService(t)
		data := pngBytes(t, 100, 100)

		mockS3.EXPECT().UploadFileBytes(gomock.Any(), "resto", "images", gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/images/b.png", nil)
		mockS3.EXPECT().UploadFileBytes(gomock.Any(), "resto", "thumbnails", gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 unavailable"))
		mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://cdn.example.com/images/b.png").Return("images/b.png")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "resto", "images/b.png").Return(nil)

		res, err := svc.UploadImage(context.Background(), imageRequest(data, "dish.png", "image/png"))

		time.Sleep(10 * time.Millisecond)

		assert.Error(t, err)
		assert.Empty(t, res.URL)
	})

	t.Run("rejects non image content type", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UploadImage(context.Background(), imageRequest([]byte("%PDF-1.4"), "menu.pdf", "application/pdf"))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects undecodable image", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UploadImage(context.Background(), imageRequest([]byte("not an image"), "dish.png", "image/png"))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestMediaService_UploadVideo(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantCode    int
	}{
		{name: "mp4", contentType: "video/mp4", size: 2048},
		{name: "too large", contentType: "video/mp4", size: 101 << 20, wantCode: http.StatusBadRequest},
		{name: "wrong type", contentType: "video/quicktime", size: 2048, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockS3 := newService(t)
			data := []byte("....ftypmp42")

			if tt.wantCode == 0 {
				mockS3.EXPECT().UploadFileBytes(gomock.Any(), "resto", "videos", gomock.Any(), tt.contentType, data).
					Return("https://cdn.example.com/videos/v.mp4", nil)
			}

			res, err := svc.UploadVideo(context.Background(), dto.UploadVideoRequest{
				File:        memFile{bytes.NewReader(data)},
				Header:      &multipart.FileHeader{Filename: "review.mp4", Size: tt.size},
				ContentType: tt.contentType,
				Size:        tt.size,
			})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "https://cdn.example.com/videos/v.mp4", res.URL)
		})
	}
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("deletes stored objects", func(t *testing.T) {
		svc, mockS3 := newService(t)

		mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://cdn.example.com/images/a.png").Return("images/a.png")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "resto", "images/a.png").Return(nil)

		err := svc.Delete(context.Background(), dto.DeleteRequest{URLs: []string{"https://cdn.example.com/images/a.png"}})

		assert.NoError(t, err)
	})

	t.Run("foreign url rejected before deleting anything", func(t *testing.T) {
		svc, mockS3 := newService(t)

		mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://cdn.example.com/images/a.png").Return("images/a.png")
		mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://elsewhere.example.org/x.png").Return("")

		err := svc.Delete(context.Background(), dto.DeleteRequest{URLs: []string{
			"https://cdn.example.com/images/a.png",
			"https://elsewhere.example.org/x.png",
		}})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestMediaService_Discard(t *testing.T) {
	svc, mockS3 := newService(t)

	mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://cdn.example.com/videos/v.mp4").Return("videos/v.mp4")
	mockS3.EXPECT().GetObjectKeyFromURL("resto", "https://youtube.com/watch?v=1").Return("")
	mockS3.EXPECT().DeleteFile(gomock.Any(), "resto", "videos/v.mp4").Return(errors.New("gone"))

	svc.Discard(context.Background(), "https://cdn.example.com/videos/v.mp4", "https://youtube.com/watch?v=1")

	time.Sleep(10 * time.Millisecond)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", dto.Extension("Dish.PNG", "image/png"))
	assert.Equal(t, ".webp", dto.Extension("blob", "image/webp"))
	assert.Equal(t, "", dto.Extension("blob", ""))
}
