package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	mediaMocks "resto/internal/domains/media/mocks"
	menuMocks "resto/internal/domains/menu/mocks"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/service"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

type fixture struct {
	categories *menuMocks.MockCategory
	items      *menuMocks.MockItem
	cache      *cacheMocks.MockRedisCache
	media      *mediaMocks.MockMedia
	svc        service.Menu
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := fixture{
		categories: menuMocks.NewMockCategory(ctrl),
		items:      menuMocks.NewMockItem(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		media:      mediaMocks.NewMockMedia(ctrl),
	}
	f.svc = service.New(f.categories, f.items, cfg, f.cache, mocks.NewOtel(), f.media)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func ptr[T any](v T) *T {
	return &v
}

func TestMenuService_GetMenu(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		want      map[string][]string
		wantErr   bool
	}{
		{
			name: "items nested under active categories",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.categories.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Category, error) {
						assert.Equal(t, model.FieldDisplayOrder, params.SortBy)

						return []model.Category{{ID: "c1", Name: "Starters"}, {ID: "c2", Name: "Mains"}}, nil
					})
				f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), service.PublicItemFilter("")).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Item, error) {
						assert.Equal(t, "menu_items.display_order", params.SortBy)

						return []model.Item{
							{ID: "i1", CategoryID: "c2", Name: "Thali"},
							{ID: "i2", CategoryID: "c1", Name: "Samosa"},
							{ID: "i3", CategoryID: "c2", Name: "Biryani"},
						}, nil
					})
			},
			want: map[string][]string{"Starters": {"Samosa"}, "Mains": {"Thali", "Biryani"}},
		},
		{
			name: "empty category is kept",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.categories.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Category{{ID: "c1", Name: "Desserts"}}, nil)
				f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			want: map[string][]string{"Desserts": {}},
		},
		{
			name: "item store error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.categories.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Category{{ID: "c1"}}, nil)
				f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetMenu(context.Background())

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Categories, len(tt.want))

			for _, section := range res.Categories {
				names := []string{}
				for _, item := range section.Items {
					names = append(names, item.Name)
				}

				assert.Equal(t, tt.want[section.Name], names)
			}
		})
	}
}

func TestMenuService_DeleteCategory(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted when empty",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1"}, nil)
				f.items.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.categories.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "category with items",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1"}, nil)
				f.items.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "item added concurrently",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1"}, nil)
				f.items.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.categories.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.DeleteCategory(adminCtx(), "c1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestMenuService_CreateItem(t *testing.T) {
	req := dto.CreateItemRequest{CategoryID: "c1", Name: "Paneer Tikka", Price: 240}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created with category name",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1", Name: "Starters"}, nil)
				f.items.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.Item) error {
					assert.True(t, item.IsAvailable)
					assert.Equal(t, "c1", item.CategoryID)

					return nil
				})
			},
		},
		{
			name: "unknown category",
			setupMock: func(f fixture) {
				f.categories.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CreateItem(adminCtx(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Starters", *res.CategoryName)
		})
	}
}

func TestMenuService_GetItems(t *testing.T) {
	f := newFixture(t)

	filter := service.PublicItemFilter("c1")

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.items.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	f.items.EXPECT().GetAll(gomock.Any(), gomock.Any(), filter).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Item, error) {
			assert.Equal(t, "menu_items.price", params.SortBy)

			return []model.Item{{ID: "i1", CategoryID: "c1"}}, nil
		})

	res, err := f.svc.GetItems(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldPrice}, filter)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.TotalPage)
}

func TestMenuService_UpdateItem(t *testing.T) {
	current := model.Item{ID: "i1", CategoryID: "c1", ImageURL: ptr("https://cdn.test/images/old.jpg")}

	tests := []struct {
		name      string
		req       dto.UpdateItemRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "new image discards the old one",
			req:  dto.UpdateItemRequest{ImageURL: ptr("https://cdn.test/images/new.jpg")},
			setupMock: func(f fixture) {
				f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.items.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.media.EXPECT().Discard(gomock.Any(), "https://cdn.test/images/old.jpg")
			},
		},
		{
			name: "move to existing category",
			req:  dto.UpdateItemRequest{CategoryID: "c2"},
			setupMock: func(f fixture) {
				f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.items.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "c2", fields[model.FieldCategoryID])

						return nil
					})
			},
		},
		{
			name: "move to missing category",
			req:  dto.UpdateItemRequest{CategoryID: "c9"},
			setupMock: func(f fixture) {
				f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.categories.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdateItemRequest{Name: "Dal"},
			setupMock: func(f fixture) {
				f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.UpdateItem(adminCtx(), tt.req, "i1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestMenuService_DeleteItem(t *testing.T) {
	f := newFixture(t)

	f.items.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "i1", ImageURL: ptr("https://cdn.test/images/a.jpg")}, nil)
	f.items.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.media.EXPECT().Discard(gomock.Any(), "https://cdn.test/images/a.jpg")

	err := f.svc.DeleteItem(adminCtx(), "i1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
