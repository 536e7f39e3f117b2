package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	reviewMocks "resto/internal/domains/review/mocks"
	"resto/internal/domains/review/model"
	"resto/internal/domains/review/model/dto"
	"resto/internal/domains/review/service"
	"resto/shared"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

type fixture struct {
	repo  *reviewMocks.MockReview
	cache *cacheMocks.MockRedisCache
	svc   service.Review
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := fixture{
		repo:  reviewMocks.NewMockReview(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

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

func TestReviewService_Submit(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "stored unapproved as guest",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, review model.CustomerReview) error {
					assert.False(t, review.IsApproved)
					assert.Equal(t, constant.ContextGuest, review.CreatedBy)
					assert.Equal(t, 5, review.Rating)

					return nil
				})
			},
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Submit(context.Background(), dto.SubmitReviewRequest{
				CustomerName: "Meera",
				Email:        ptr("meera@example.com"),
				Rating:       5,
				ReviewText:   "Lovely biryani and quick service.",
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.False(t, res.IsApproved)
			assert.Nil(t, res.Email)
		})
	}
}

func TestReviewService_GetPublic(t *testing.T) {
	approvedOnly := shared.FilterByField(model.FieldIsApproved, true, model.TableName)

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "approved newest first without contact details",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Count(gomock.Any(), approvedOnly).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), approvedOnly).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.CustomerReview, error) {
						assert.Equal(t, model.FieldCreatedAt, params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return []model.CustomerReview{
							{ID: "r2", IsApproved: true, Email: ptr("a@example.com")},
							{ID: "r1", IsApproved: true, Phone: ptr("555")},
						}, nil
					})
			},
			wantLen: 2,
		},
		{
			name: "store error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetPublic(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "rating"})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Reviews, tt.wantLen)

			for _, review := range res.Reviews {
				assert.Nil(t, review.Email)
				assert.Nil(t, review.Phone)
			}
		})
	}
}

func TestReviewService_SetApproval(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ApprovalRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "approve",
			req:  dto.ApprovalRequest{IsApproved: ptr(true)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{ID: "r1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldIsApproved])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "hide again",
			req:  dto.ApprovalRequest{IsApproved: ptr(false)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{ID: "r1", IsApproved: true}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldIsApproved])

						return nil
					})
			},
		},
		{
			name:      "missing flag",
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.ApprovalRequest{IsApproved: ptr(true)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req:  dto.ApprovalRequest{IsApproved: ptr(true)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{ID: "r1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.SetApproval(adminCtx(), tt.req, "r1")

			time.Sleep(10 * time.Millisecond)

			switch {
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.CustomerReview, error) {
			assert.Equal(t, model.FieldCreatedAt, params.SortBy)

			return []model.CustomerReview{{ID: "r1", Email: ptr("a@example.com")}}, nil
		})

	res, err := f.svc.GetAll(adminCtx(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "email"}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Reviews, 1)
	assert.NotNil(t, res.Reviews[0].Email)
}

func TestReviewService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{ID: "r1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomerReview{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminCtx(), "r1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
