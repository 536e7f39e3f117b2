package service

import (
	"context"
	"fmt"

	"resto/config"
	"resto/infras/otel"
	media "resto/internal/domains/media/service"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cachePrefixMenu     = "menu:"
	cacheGetMenu        = "menu:public"
	cacheGetCategory    = "menu:category"
	cacheGetAllCategory = "menu:categories"
	cacheGetItem        = "menu:item"
	cacheGetAllItem     = "menu:items"
)

var errCategoryInUse = failure.Conflict("menu category still has items, move or delete them first")

type Menu interface {
	GetMenu(ctx context.Context) (dto.MenuResponse, error)

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetCategories(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	GetCategory(ctx context.Context, id string) (dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	DeleteCategory(ctx context.Context, id string) error

	CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	GetItem(ctx context.Context, id string) (dto.ItemResponse, error)
	UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) error
	DeleteItem(ctx context.Context, id string) error
}

type serviceImpl struct {
	categoryRepo repository.Category
	itemRepo     repository.Item
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	media        media.Media
}

func New(categoryRepo repository.Category, itemRepo repository.Item, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media media.Media) Menu {
	return &serviceImpl{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		media:        media,
	}
}

// GetMenu returns the active categories in display order, each with its available items.
func (s *serviceImpl) GetMenu(ctx context.Context) (res dto.MenuResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.GetMenu")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return shared.ReadThrough(ctx, s.cache, cacheGetMenu, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.MenuResponse, err error) {
		ordered := gDto.QueryParams{SortBy: model.FieldDisplayOrder, SortDir: gDto.SortDirAsc}

		categories, err := s.categoryRepo.GetAll(ctx, ordered, shared.FilterByField(model.FieldIsActive, true, model.CategoryTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get menu categories")

			return res, fmt.Errorf("failed to get menu categories: %w", err)
		}

		ordered.SortBy = model.ItemTableName + "." + model.FieldDisplayOrder

		items, err := s.itemRepo.GetAll(ctx, ordered, PublicItemFilter(""))
		if err != nil {
			log.Error().Err(err).Msg("failed to get menu items")

			return res, fmt.Errorf("failed to get menu items: %w", err)
		}

		res.FromModels(categories, items)

		return res, nil
	})
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.CreateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	category := req.ToModel(user)

	if err = s.categoryRepo.Insert(ctx, category); err != nil {
		log.Error().Err(err).Msg("failed to insert menu category")

		return res, fmt.Errorf("failed to create menu category: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) GetCategories(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.GetCategories")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Restrict(model.CategorySortableFields, model.FieldDisplayOrder, gDto.SortDirAsc)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, req, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetCategoriesResponse, err error) {
		total, err := s.categoryRepo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count menu categories")

			return res, fmt.Errorf("failed to count menu categories: %w", err)
		}

		models, err := s.categoryRepo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get menu categories")

			return res, fmt.Errorf("failed to get menu categories: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) GetCategory(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.GetCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.CategoryResponse, err error) {
		category, err := s.findCategory(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(category)

		return res, nil
	})
}

func (s *serviceImpl) UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.UpdateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.findCategory(ctx, id); err != nil {
		return err
	}

	if err = s.categoryRepo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.CategoryTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update menu category")

		return fmt.Errorf("failed to update menu category: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.DeleteCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.findCategory(ctx, id); err != nil {
		return err
	}

	hasItems, err := s.itemRepo.Exist(ctx, shared.FilterByField(model.FieldCategoryID, id, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu items of category")

		return fmt.Errorf("failed to check menu items: %w", err)
	}

	if hasItems {
		return errCategoryInUse
	}

	err = s.categoryRepo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName))
	if shared.IsForeignKeyViolation(err) {
		return errCategoryInUse
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to delete menu category")

		return fmt.Errorf("failed to delete menu category: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.CreateItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	category, err := s.findCategory(ctx, req.CategoryID)
	if err != nil {
		return res, err
	}

	item := req.ToModel(user)

	if err = s.itemRepo.Insert(ctx, item); err != nil {
		log.Error().Err(err).Msg("failed to insert menu item")

		return res, fmt.Errorf("failed to create menu item: %w", err)
	}

	item.CategoryName = &category.Name

	s.invalidate(ctx)

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.GetItems")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Restrict(model.ItemSortableFields, model.FieldDisplayOrder, gDto.SortDirAsc)
	req.SortBy = model.ItemTableName + "." + req.SortBy

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItem, req, filter)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetItemsResponse, err error) {
		total, err := s.itemRepo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count menu items")

			return res, fmt.Errorf("failed to count menu items: %w", err)
		}

		models, err := s.itemRepo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get menu items")

			return res, fmt.Errorf("failed to get menu items: %w", err)
		}

		res.FromModels(models, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) GetItem(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.GetItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	return shared.ReadThrough(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.ItemResponse, err error) {
		item, err := s.findItem(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(item)

		return res, nil
	})
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.UpdateItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}

	if req.CategoryID != "" && req.CategoryID != current.CategoryID {
		exist, err := s.categoryRepo.Exist(ctx, shared.FilterByID(req.CategoryID, model.FieldID, model.CategoryTableName))
		if err != nil {
			return fmt.Errorf("failed to check menu category: %w", err)
		}

		if !exist {
			return failure.BadRequestFromString("menu category does not exist")
		}
	}

	if err = s.itemRepo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to update menu item")

		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if req.ImageURL != nil && current.ImageURL != nil && *req.ImageURL != *current.ImageURL {
		s.media.Discard(ctx, *current.ImageURL)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Menu.DeleteItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}

	if err = s.itemRepo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.ItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if current.ImageURL != nil {
		s.media.Discard(ctx, *current.ImageURL)
	}

	s.invalidate(ctx)

	return nil
}

// PublicItemFilter selects available items of active categories, optionally within one category.
func PublicItemFilter(categoryID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.ItemTableName},
		gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName},
	}

	if categoryID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldCategoryID, Value: categoryID, Operator: gDto.FilterOperatorEq, Table: model.ItemTableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

func (s *serviceImpl) findCategory(ctx context.Context, id string) (model.Category, error) {
	category, err := s.categoryRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu category")

		return category, fmt.Errorf("failed to get menu category: %w", err)
	}

	if category.ID == constant.Empty {
		return category, failure.NotFound("menu category not found")
	}

	return category, nil
}

func (s *serviceImpl) findItem(ctx context.Context, id string) (model.Item, error) {
	item, err := s.itemRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return item, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("menu item not found")
	}

	return item, nil
}

// invalidate drops every menu cache; categories and items feed the nested public menu.
func (s *serviceImpl) invalidate(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cachePrefixMenu)
}
