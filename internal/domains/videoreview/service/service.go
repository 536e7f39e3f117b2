package service

import (
	"context"
	"fmt"

	"resto/config"
	"resto/infras/otel"
	media "resto/internal/domains/media/service"
	"resto/internal/domains/videoreview/model"
	"resto/internal/domains/videoreview/model/dto"
	"resto/internal/domains/videoreview/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVideoReview    = "video_review:get"
	cacheGetAllVideoReview = "video_review:get_all"
	cacheCountVideoReview  = "video_review:count"
)

type VideoReview interface {
	Create(ctx context.Context, req dto.CreateVideoReviewRequest) (dto.VideoReviewResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVideoReviewsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VideoReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateVideoReviewRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.VideoReview
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media media.Media
}

func New(repo repository.VideoReview, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media media.Media) VideoReview {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVideoReviewRequest) (res dto.VideoReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	video := req.ToModel(user)

	if err = s.repo.Insert(ctx, video); err != nil {
		log.Error().Err(err).Msg("failed to insert video review")

		return res, fmt.Errorf("failed to create video review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVideoReview)
		shared.InvalidateCaches(c, s.cache, cacheCountVideoReview)
	}()

	res.FromModel(video)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVideoReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Restrict(model.SortableFields, model.FieldDisplayOrder, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVideoReview, req, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetVideoReviewsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		models, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get video reviews")

			return res, fmt.Errorf("failed to get video reviews: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVideoReview, gDto.QueryParams{}, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res int, err error) {
		res, err = s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count video reviews")

			return res, fmt.Errorf("failed to count video reviews: %w", err)
		}

		return res, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VideoReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetVideoReview, id)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.VideoReviewResponse, err error) {
		video, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get video review")

			return res, fmt.Errorf("failed to get video review: %w", err)
		}

		if video.ID == constant.Empty {
			return res, failure.NotFound("video review not found")
		}

		res.FromModel(video)

		return res, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVideoReviewRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get video review: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("video review not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update video review")

		return fmt.Errorf("failed to update video review: %w", err)
	}

	if replaced := req.Replaced(current); len(replaced) > 0 {
		s.media.Discard(ctx, replaced...)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VideoReview.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get video review: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("video review not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete video review")

		return fmt.Errorf("failed to delete video review: %w", err)
	}

	s.media.Discard(ctx, current.ObjectURLs()...)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVideoReview, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete video review cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVideoReview)
		shared.InvalidateCaches(c, s.cache, cacheCountVideoReview)
	}()
}
