package dto_test

import (
	"net/http"
	"net/url"
	"resto/shared/constant"
	"resto/shared/dto"
	"resto/shared/model"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(24 * time.Hour)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	parsedCreated, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	assert.NoError(t, err)
	assert.True(t, parsedCreated.Equal(createdAt))

	parsedModified, err := time.Parse(constant.DateFormat, metadata.ModifiedAt)
	assert.NoError(t, err)
	assert.True(t, parsedModified.Equal(modifiedAt))

	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestNewMetadata_ZeroTimes(t *testing.T) {
	metadata := dto.NewMetadata(model.Metadata{CreatedBy: "creator"})

	assert.Empty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          url.Values
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"name"}, "sort_dir": {"asc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			query:          url.Values{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit capped",
			query:    url.Values{"limit": {"5000"}},
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "invalid values ignored",
			query:    url.Values{"page": {"-1"}, "limit": {"abc"}, "sort_dir": {"sideways"}},
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{RawQuery: tt.query.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Restrict(t *testing.T) {
	allowed := []string{"name", "display_order"}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "allowed column keeps direction",
			params:   dto.QueryParams{SortBy: "name", SortDir: dto.SortDirDesc},
			expected: dto.QueryParams{SortBy: "name", SortDir: dto.SortDirDesc},
		},
		{
			name:     "allowed column without direction",
			params:   dto.QueryParams{SortBy: "name"},
			expected: dto.QueryParams{SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column replaced",
			params:   dto.QueryParams{SortBy: "name; DROP TABLE party_halls", SortDir: dto.SortDirDesc},
			expected: dto.QueryParams{SortBy: "display_order", SortDir: dto.SortDirAsc},
		},
		{
			name:     "empty column replaced",
			params:   dto.QueryParams{},
			expected: dto.QueryParams{SortBy: "display_order", SortDir: dto.SortDirAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Restrict(allowed, "display_order", dto.SortDirAsc)

			assert.Equal(t, tt.expected, tt.params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "hall_id", Value: "hall-1", Operator: dto.FilterOperatorEq, Table: "party_hall_bookings"},
			dto.Filter{Field: "approval_status", Value: []string{"pending", "approved"}, Operator: dto.FilterOperatorIn},
			dto.Filter{Field: "booking_date", ArgName: "date_from", Value: "2025-03-01", Operator: dto.FilterOperatorGreaterEq},
			dto.Filter{Field: "approved_at", Operator: dto.FilterIsNull},
		},
	}

	where, args := group.GetWhereClause()

	assert.True(t, strings.HasPrefix(where, "(") && strings.HasSuffix(where, ")"))
	assert.Contains(t, where, "party_hall_bookings.hall_id = :hall_id")
	assert.Contains(t, where, "approval_status IN (:approval_status_0, :approval_status_1)")
	assert.Contains(t, where, "booking_date >= :date_from")
	assert.Contains(t, where, "approved_at IS NULL")
	assert.Equal(t, map[string]any{
		"hall_id":           "hall-1",
		"approval_status_0": "pending",
		"approval_status_1": "approved",
		"date_from":         "2025-03-01",
	}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "like",
			filter:    dto.NewFilter("menu_items", "name", dto.FilterOperatorLike, "biryani"),
			wantWhere: "LOWER(menu_items.name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%biryani%"},
		},
		{
			name:      "overlapping slots",
			filter:    dto.Filter{Field: "time_slots", ArgName: "time_slot", Operator: dto.FilterOperatorOverlaps, Value: []string{"night"}},
			wantWhere: "time_slots && :time_slot",
			wantArgs:  map[string]any{"time_slot": pq.StringArray{"night"}},
		},
		{
			name:      "in with a scalar binds it",
			filter:    dto.NewFilter("", "approval_status", dto.FilterOperatorIn, "pending"),
			wantWhere: "approval_status = :approval_status",
			wantArgs:  map[string]any{"approval_status": "pending"},
		},
		{
			name:      "in with an empty list matches nothing",
			filter:    dto.NewFilter("", "approval_status", dto.FilterOperatorIn, []string{}),
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.NewFilter("", "name", "regex", ".*"),
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_Nested(t *testing.T) {
	slots := dto.NewFilterGroup(dto.FilterGroupOperatorOr,
		dto.NewFilter("", "approval_status", dto.FilterOperatorEq, "approved"),
		dto.Filter{Field: "approval_status", ArgName: "pending", Operator: dto.FilterOperatorEq, Value: "pending"},
	)

	group := dto.NewFilterGroup(dto.FilterGroupOperatorAnd)
	group.Add(dto.NewFilter("", "hall_id", dto.FilterOperatorEq, "hall-a"))
	group.Add(dto.NewFilter("", "ignored", "regex", "x"))
	group.Add(slots)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(hall_id = :hall_id AND (approval_status = :approval_status OR approval_status = :pending))", where)
	assert.Len(t, args, 3)
}
