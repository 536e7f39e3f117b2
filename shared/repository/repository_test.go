package repository_test

import (
	"context"
	"net/http"
	"regexp"
	"resto/infras/otel/mocks"
	"resto/infras/postgres"
	"resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type widget struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Status   string `db:"status"`
	HallName string `column:"name" db:"hall_name" table:"halls"`
}

func (widget) GetJoinQuery() string {
	return "LEFT JOIN halls ON halls.id = widgets.hall_id"
}

func setup(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock, *postgres.Connection, *mocks.Recorder) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}
	recorder := mocks.NewRecorder()

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, recorder), mock, conn, recorder
}

func byID(id string) dto.FilterGroup {
	return dto.NewFilterGroup(dto.FilterGroupOperatorAnd, dto.NewFilter("widgets", "id", dto.FilterOperatorEq, id))
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo, _, _, _ := setup(t)

	assert.Equal(t, []string{"id", "name", "status"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	tests := []struct {
		name      string
		execErr   error
		wantErr   bool
		wantTrace int
	}{
		{name: "inserted"},
		{
			name:      "unique violation",
			execErr:   &pq.Error{Code: "23505"},
			wantErr:   true,
			wantTrace: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _, recorder := setup(t)

			exec := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, status) VALUES ($1, $2, $3)")).
				WithArgs("w1", "Lotus", "active")
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Insert(context.Background(), widget{ID: "w1", Name: "Lotus", Status: "active"})

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.execErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Len(t, recorder.Errors(), tt.wantTrace)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_InsertBulkTx_Empty(t *testing.T) {
	repo, mock, conn, _ := setup(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := repository.WithTransaction(context.Background(), conn, func(tx *sqlx.Tx) error {
		return repo.InsertBulkTx(context.Background(), tx, nil)
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo, mock, _, _ := setup(t)
	ctx := context.Background()
	empty := dto.NewFilterGroup(dto.FilterGroupOperatorAnd)

	assert.ErrorIs(t, repo.Update(ctx, map[string]any{"name": "x"}, empty), repository.ErrRequiredFilter)
	assert.ErrorIs(t, repo.Delete(ctx, empty), repository.ErrRequiredFilter)

	_, err := repo.Exist(ctx, empty)
	assert.ErrorIs(t, err, repository.ErrRequiredFilter)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateAffectedTx(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "matched", affected: 1},
		{name: "status moved on", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, conn, _ := setup(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1, status = $2 WHERE (widgets.id = $3 AND widgets.status = $4)")).
				WithArgs("Orchid", "archived", "w1", "active").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			filter := byID("w1")
			filter.Add(dto.Filter{Table: "widgets", Field: "status", ArgName: "current_status", Operator: dto.FilterOperatorEq, Value: "active"})

			var affected int64

			err := repository.WithTransaction(context.Background(), conn, func(tx *sqlx.Tx) error {
				var err error

				affected, err = repo.UpdateAffectedTx(context.Background(), tx, map[string]any{"status": "archived", "name": "Orchid"}, filter)

				return err
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.affected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.status, halls.name AS hall_name FROM widgets LEFT JOIN halls ON halls.id = widgets.hall_id  WHERE (widgets.id = $1)")

	t.Run("found", func(t *testing.T) {
		repo, mock, _, _ := setup(t)

		mock.ExpectPrepare(query).ExpectQuery().WithArgs("w1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "hall_name"}).AddRow("w1", "Lotus", "active", "Grand"))

		got, err := repo.Get(context.Background(), byID("w1"))

		assert.NoError(t, err)
		assert.Equal(t, widget{ID: "w1", Name: "Lotus", Status: "active", HallName: "Grand"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is the zero value", func(t *testing.T) {
		repo, mock, _, _ := setup(t)

		mock.ExpectPrepare(query).ExpectQuery().WithArgs("w1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "hall_name"}))

		got, err := repo.Get(context.Background(), byID("w1"))

		assert.NoError(t, err)
		assert.Empty(t, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Get_MalformedValue(t *testing.T) {
	repo, mock, _, _ := setup(t)

	mock.ExpectPrepare("SELECT").ExpectQuery().WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

	_, err := repo.Get(context.Background(), byID("not-a-uuid"))

	assert.ErrorIs(t, err, repository.ErrMalformedValue)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	code, msg := failure.Public(err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotContains(t, msg, "uuid")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_Ordering(t *testing.T) {
	tests := []struct {
		name   string
		params dto.QueryParams
		order  string
	}{
		{
			name:   "own column is qualified",
			params: dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc},
			order:  "ORDER BY widgets.name ASC, widgets.id ASC",
		},
		{
			name:   "joined alias stays bare",
			params: dto.QueryParams{SortBy: "hall_name", SortDir: dto.SortDirDesc},
			order:  "ORDER BY hall_name DESC, widgets.id DESC",
		},
		{
			name:   "primary key has no tiebreak",
			params: dto.QueryParams{SortBy: "id", SortDir: dto.SortDirAsc},
			order:  "ORDER BY widgets.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _, _ := setup(t)

			mock.ExpectPrepare(regexp.QuoteMeta(tt.order)).ExpectQuery().
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "hall_name"}).AddRow("w1", "Lotus", "active", "Grand"))

			got, err := repo.GetAll(context.Background(), tt.params, dto.NewFilterGroup(dto.FilterGroupOperatorAnd))

			assert.NoError(t, err)
			assert.Len(t, got, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
