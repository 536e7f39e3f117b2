package dto

import (
	"mime/multipart"
	"path/filepath"
	"resto/shared/constant"
	"strings"
)

const (
	ImageMaxSizeMB = 10
	VideoMaxSizeMB = 100
)

type UploadImageRequest struct {
	File        multipart.File        `json:"-"`
	Header      *multipart.FileHeader `json:"-"`
	ContentType string                `json:"content_type" validate:"required,mimetypes=image/png image/jpeg image/jpg image/webp"`
	Size        int64                 `json:"size"         validate:"gt=0,maxfilesize=10"`
}

func (u *UploadImageRequest) FromFile(file multipart.File, header *multipart.FileHeader) {
	u.File = file
	u.Header = header
	u.ContentType = header.Header.Get(constant.RequestHeaderContentType)
	u.Size = header.Size
}

type UploadVideoRequest struct {
	File        multipart.File        `json:"-"`
	Header      *multipart.FileHeader `json:"-"`
	ContentType string                `json:"content_type" validate:"required,mimetypes=video/mp4 video/webm video/ogg"`
	Size        int64                 `json:"size"         validate:"gt=0,maxfilesize=100"`
}

func (u *UploadVideoRequest) FromFile(file multipart.File, header *multipart.FileHeader) {
	u.File = file
	u.Header = header
	u.ContentType = header.Header.Get(constant.RequestHeaderContentType)
	u.Size = header.Size
}

type UploadImageResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type UploadVideoResponse struct {
	URL string `json:"url"`
}

type DeleteRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,url"`
}

// Extension returns the lowercase file extension for the upload, falling back to the content type.
func Extension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}

	if _, subtype, ok := strings.Cut(contentType, "/"); ok {
		return "." + strings.TrimSpace(strings.SplitN(subtype, ";", 2)[0])
	}

	return ""
}
