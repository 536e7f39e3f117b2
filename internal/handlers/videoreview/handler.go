package videoreview

import (
	"net/http"
	"resto/infras/otel"
	"resto/internal/domains/videoreview/model"
	"resto/internal/domains/videoreview/model/dto"
	"resto/internal/domains/videoreview/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.VideoReview
	otel    otel.Otel
}

func New(service service.VideoReview, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/video-reviews", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActiveVideoReviews)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/video-reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVideoReview)
		routerGroup.Get("/", handler.GetVideoReviews)
		routerGroup.Get("/{id}", handler.GetVideoReviewByID)
		routerGroup.Patch("/{id}", handler.UpdateVideoReview)
		routerGroup.Delete("/{id}", handler.DeleteVideoReview)
	})
}

// GetActiveVideoReviews lists the food review videos shown on the public site.
// @Summary List active video reviews
// @Tags VideoReview
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetVideoReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/video-reviews [get]
func (handler *Handler) GetActiveVideoReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveVideoReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	videos, err := handler.service.GetAll(ctx, queryParams, shared.FilterByField(model.FieldIsActive, true, model.TableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get video reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, videos)
}

// CreateVideoReview adds an uploaded food review video.
// @Summary Create a video review
// @Description Upload the file through /v1/admin/media/videos first and pass the returned URLs.
// @Tags Admin VideoReview
// @Accept json
// @Produce json
// @Param request body dto.CreateVideoReviewRequest true "Create Video Review Request"
// @Success 201 {object} response.Data[dto.VideoReviewResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/video-reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateVideoReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVideoReview")
	defer scope.End()

	req := dto.CreateVideoReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	video, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create video review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Video review created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, video)
}

// GetVideoReviews retrieves all video reviews based on query parameters.
// @Summary List video reviews
// @Tags Admin VideoReview
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param reviewer_name query string false "Filter by reviewer name"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetVideoReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/video-reviews [get]
// @Security BearerAuth
func (handler *Handler) GetVideoReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVideoReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	if name := query.Get(model.FieldReviewerName); name != "" {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldReviewerName, gDto.FilterOperatorLike, name))
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		filterGroup.Add(gDto.NewFilter(model.TableName, model.FieldIsActive, gDto.FilterOperatorEq, *active))
	}

	videos, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get video reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Video reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, videos)
}

// GetVideoReviewByID retrieves a video review by its ID.
// @Summary Get a video review
// @Tags Admin VideoReview
// @Produce json
// @Param id path string true "Video review ID"
// @Success 200 {object} response.Data[dto.VideoReviewResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/video-reviews/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVideoReviewByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVideoReviewByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	video, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get video review by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, video)
}

// UpdateVideoReview updates an existing video review by its ID.
// @Summary Update a video review
// @Description Replaced video or thumbnail objects are removed from storage.
// @Tags Admin VideoReview
// @Accept json
// @Produce json
// @Param id path string true "Video review ID"
// @Param request body dto.UpdateVideoReviewRequest true "Update Video Review Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/video-reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVideoReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVideoReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateVideoReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update video review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Video review updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Video review updated successfully")
}

// DeleteVideoReview deletes a video review and its stored video.
// @Summary Delete a video review
// @Tags Admin VideoReview
// @Produce json
// @Param id path string true "Video review ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/video-reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVideoReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVideoReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete video review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Video review deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Video review deleted successfully")
}
