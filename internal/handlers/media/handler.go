package media

import (
	"mime/multipart"
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/media/model/dto"
	"resto/internal/domains/media/service"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Post("/images", handler.UploadImage)
		routerGroup.Post("/videos", handler.UploadVideo)
		routerGroup.Delete("/", handler.DeleteMedia)
	})
}

// UploadImage stores an image and its thumbnail.
// @Summary Upload an image
// @Description png, jpeg or webp up to 10 MB. Returns the image URL and a JPEG thumbnail URL.
// @Tags Admin Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 201 {object} response.Data[dto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/media/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	file, fileHeader, err := formFile(w, r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{}
	req.FromFile(file, fileHeader)

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// UploadVideo stores a video.
// @Summary Upload a video
// @Description mp4, webm or ogg up to 100 MB.
// @Tags Admin Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Video file to upload"
// @Success 201 {object} response.Data[dto.UploadVideoResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/media/videos [post]
// @Security BearerAuth
func (handler *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadVideo")
	defer scope.End()

	file, fileHeader, err := formFile(w, r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadVideoRequest{}
	req.FromFile(file, fileHeader)

	res, err := handler.service.UploadVideo(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload video")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Video uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteMedia handles deletion of stored objects by URL.
// @Summary Delete media objects
// @Tags Admin Media
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Delete Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/media [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	req := dto.DeleteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete media")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Media deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Media deleted successfully")
}

func formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxBody)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return nil, nil, failure.BadRequestFromString("request must be a multipart form within the upload size limit")
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		return nil, nil, failure.BadRequestFromString("form field 'file' is required")
	}

	return file, fileHeader, nil
}
