package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/booking/model"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gRepo "resto/shared/repository"

	"github.com/jmoiron/sqlx"
)

// ErrStatusChanged is returned when a booking left the expected status before the transition committed.
var ErrStatusChanged = errors.New("booking status changed")

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Reserve(ctx context.Context, booking model.Booking) error
	Reschedule(ctx context.Context, booking model.Booking, fields map[string]any) error
	Transition(ctx context.Context, id, from string, fields map[string]any, release bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	claims gRepo.Repository[model.SlotClaim]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		claims:     gRepo.NewRepository[model.SlotClaim](model.SlotClaimEntityName, model.SlotClaimTableName, model.FieldBookingID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Reserve inserts the booking together with one claim per occupied slot. A slot already
// claimed for the same hall and date fails the whole transaction with a unique violation.
func (r *repositoryImpl) Reserve(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reserve")
	defer scope.End()

	err := gRepo.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		return r.claims.InsertBulkTx(ctx, tx, booking.Claims())
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to reserve booking: %w", err)
	}

	return nil
}

// Reschedule writes fields and replaces the booking's claims with the ones of its new schedule.
func (r *repositoryImpl) Reschedule(ctx context.Context, booking model.Booking, fields map[string]any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reschedule")
	defer scope.End()

	err := gRepo.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		if err := r.claims.DeleteTx(ctx, tx, shared.FilterByField(model.FieldBookingID, booking.ID, model.SlotClaimTableName)); err != nil {
			return err
		}

		if booking.ApprovalStatus == model.StatusRejected {
			return nil
		}

		return r.claims.InsertBulkTx(ctx, tx, booking.Claims())
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to reschedule booking: %w", err)
	}

	return nil
}

// Transition updates a booking only while it still has status from. When release is set the
// booking's claims are dropped in the same transaction.
func (r *repositoryImpl) Transition(ctx context.Context, id, from string, fields map[string]any, release bool) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()

	filter := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd,
		gDto.Filter{Table: model.TableName, Field: model.FieldID, ArgName: "booking_id", Operator: gDto.FilterOperatorEq, Value: id},
		gDto.Filter{Table: model.TableName, Field: model.FieldApprovalStatus, ArgName: "current_status", Operator: gDto.FilterOperatorEq, Value: from},
	)

	err := gRepo.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		affected, err := r.UpdateAffectedTx(ctx, tx, fields, filter)
		if err != nil {
			return err
		}

		if affected == 0 {
			return ErrStatusChanged
		}

		if !release {
			return nil
		}

		return r.claims.DeleteTx(ctx, tx, shared.FilterByField(model.FieldBookingID, id, model.SlotClaimTableName))
	})
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}
