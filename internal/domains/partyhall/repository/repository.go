package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/partyhall/model"
	gDto "resto/shared/dto"
	gRepo "resto/shared/repository"
)

type PartyHall interface {
	Insert(ctx context.Context, model model.PartyHall) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PartyHall, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PartyHall, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PartyHall]
}

func New(db *postgres.Connection, otel otel.Otel) PartyHall {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PartyHall](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
