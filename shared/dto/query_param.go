package dto

import (
	"net/http"
	"resto/shared/constant"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit and sorting from the query string. Malformed values are
// ignored and limit is capped at constant.MaxValueLimit. With withDefaults the first page of
// constant.DefaultValueLimit rows is used when the request does not say otherwise.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	if page, ok := positive(query.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positive(query.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positive(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)

	return n, err == nil && n > 0
}

// Restrict keeps SortBy only when it names one of the allowed columns, otherwise the
// fallback column and direction are used. SortBy ends up in the ORDER BY clause verbatim.
func (q *QueryParams) Restrict(allowed []string, fallbackColumn, fallbackDir string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = fallbackColumn
		q.SortDir = fallbackDir
	}

	if q.SortDir == "" {
		q.SortDir = fallbackDir
	}
}
