package service

import (
	"context"
	"fmt"

	"resto/config"
	"resto/infras/otel"
	media "resto/internal/domains/media/service"
	"resto/internal/domains/partyhall/model"
	"resto/internal/domains/partyhall/model/dto"
	"resto/internal/domains/partyhall/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPartyHall    = "party_hall:get"
	cacheGetAllPartyHall = "party_hall:get_all"
	cacheCountPartyHall  = "party_hall:count"
)

type PartyHall interface {
	Create(ctx context.Context, req dto.CreatePartyHallRequest) (dto.PartyHallResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPartyHallsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PartyHallResponse, error)
	Update(ctx context.Context, req dto.UpdatePartyHallRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.PartyHall
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media media.Media
}

func New(repo repository.PartyHall, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media media.Media) PartyHall {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePartyHallRequest) (res dto.PartyHallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hall := req.ToModel(user)

	if err = s.repo.Insert(ctx, hall); err != nil {
		log.Error().Err(err).Msg("failed to insert party hall")

		return res, fmt.Errorf("failed to create party hall: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(hall)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPartyHallsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Restrict(model.SortableFields, model.FieldDisplayOrder, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPartyHall, req, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetPartyHallsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		models, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get party halls")

			return res, fmt.Errorf("failed to get party halls: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPartyHall, gDto.QueryParams{}, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res int, err error) {
		res, err = s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count party halls")

			return res, fmt.Errorf("failed to count party halls: %w", err)
		}

		return res, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PartyHallResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPartyHall, id)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.PartyHallResponse, err error) {
		hall, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get party hall")

			return res, fmt.Errorf("failed to get party hall: %w", err)
		}

		if hall.ID == constant.Empty {
			return res, failure.NotFound("party hall not found")
		}

		res.FromModel(hall)

		return res, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePartyHallRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check party hall existence")

		return fmt.Errorf("failed to get party hall: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("party hall not found")
	}

	if minGuests, maxGuests := req.CapacityRange(current); maxGuests < minGuests {
		return failure.BadRequestFromString("capacity_max must be greater than or equal to capacity_min")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update party hall")

		return fmt.Errorf("failed to update party hall: %w", err)
	}

	if req.ImageURL != nil && current.ImageURL != nil && *req.ImageURL != *current.ImageURL {
		s.media.Discard(ctx, *current.ImageURL)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PartyHall.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get party hall: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("party hall not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("party hall has bookings, deactivate it instead")
		}

		log.Error().Err(err).Msg("failed to delete party hall")

		return fmt.Errorf("failed to delete party hall: %w", err)
	}

	if current.ImageURL != nil {
		s.media.Discard(ctx, *current.ImageURL)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPartyHall, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete party hall cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPartyHall)
		shared.InvalidateCaches(c, s.cache, cacheCountPartyHall)
	}()
}
