package gallery

import (
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/gallery/model"
	"resto/internal/domains/gallery/model/dto"
	"resto/internal/domains/gallery/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActiveImages)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateImage)
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
		routerGroup.Patch("/{id}", handler.UpdateImage)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

// GetActiveImages lists the gallery shown on the public site.
// @Summary List active gallery images
// @Tags Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetGalleryImagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetActiveImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	images, err := handler.service.GetAll(ctx, queryParams, shared.FilterByField(model.FieldIsActive, true, model.TableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// CreateImage adds an uploaded image to the gallery.
// @Summary Create a gallery image
// @Description Upload the file through /v1/admin/media/images first and pass the returned URLs.
// @Tags Admin Gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryImageRequest true "Create Gallery Image Request"
// @Success 201 {object} response.Data[dto.GalleryImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
	defer scope.End()

	req := dto.CreateGalleryImageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	image, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, image)
}

// GetImages retrieves all gallery images based on query parameters.
// @Summary List gallery images
// @Tags Admin Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetGalleryImagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	if title := query.Get(model.FieldTitle); title != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldTitle, gDto.FilterOperatorLike, title))
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldIsActive, gDto.FilterOperatorEq, *active))
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery images retrieved successfully")

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID retrieves a gallery image by its ID.
// @Summary Get a gallery image
// @Tags Admin Gallery
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Data[dto.GalleryImageResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery image by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateImage updates an existing gallery image by its ID.
// @Summary Update a gallery image
// @Description Replaced image or thumbnail objects are removed from storage.
// @Tags Admin Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery image ID"
// @Param request body dto.UpdateGalleryImageRequest true "Update Gallery Image Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateGalleryImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteImage deletes a gallery image and its stored objects.
// @Summary Delete a gallery image
// @Tags Admin Gallery
// @Produce json
// @Param id path string true "Gallery image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
