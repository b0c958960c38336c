package application

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

const (
	msgInvalidLimit      = "Limit must be a non-negative integer!"
	msgInvalidSortField  = "Sort field is not supported!"
	msgInvalidSortOrder  = "Sort order must be 'asc' or 'desc'!"
	msgInvalidTitle      = "Title filter must be a string!"
	msgInvalidCategories = "Category filter must be a list of category IDs!"
	msgInvalidPriceRange = "Price filter must be a [min, max] pair of numbers!"
)

// parseID accepts any base-10 integer and fails with msg otherwise. Numeric ids
// that match no row, such as 0, are left to the store lookup to reject as not found.
func parseID(raw string, msg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperror.InvalidID(msg)
	}
	return id, nil
}

// ParseLimit coerces a limit taken from a path or body into a non-negative int.
func ParseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, apperror.Validation(msgInvalidLimit)
	}
	return n, nil
}

// BuildSort checks the caller's field against the sortable columns.
// An empty order means ascending.
func BuildSort(field, order string) (repository.ProductSort, error) {
	col := repository.ProductColumn(strings.TrimSpace(field))
	if !col.Valid() {
		return repository.ProductSort{}, apperror.Validation(msgInvalidSortField)
	}
	var dir repository.SortDirection
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
		dir = repository.SortAsc
	case "desc":
		dir = repository.SortDesc
	default:
		return repository.ProductSort{}, apperror.Validation(msgInvalidSortOrder)
	}
	return repository.ProductSort{Column: col, Direction: dir}, nil
}

// BuildFilter turns one (key, value) intent into a single store predicate.
//
//	title    substring of the title, value is a string
//	category category id membership, value is a list of ids (numbers or numeric strings)
//	price    inclusive range, value is [min, max]
func BuildFilter(key string, value any) (repository.ProductFilter, error) {
	switch repository.FilterKind(key) {
	case repository.FilterTitle:
		s, ok := value.(string)
		if !ok {
			return repository.ProductFilter{}, apperror.Validation(msgInvalidTitle)
		}
		return repository.ProductFilter{Kind: repository.FilterTitle, Title: s}, nil

	case repository.FilterCategory:
		items, ok := toSlice(value)
		if !ok {
			return repository.ProductFilter{}, apperror.Validation(msgInvalidCategories)
		}
		ids := make([]int64, 0, len(items))
		for _, it := range items {
			id, ok := toInt64(it)
			if !ok {
				return repository.ProductFilter{}, apperror.Validation(msgInvalidCategories)
			}
			ids = append(ids, id)
		}
		return repository.ProductFilter{Kind: repository.FilterCategory, CategoryIDs: ids}, nil

	case repository.FilterPrice:
		items, ok := toSlice(value)
		if !ok || len(items) != 2 {
			return repository.ProductFilter{}, apperror.Validation(msgInvalidPriceRange)
		}
		lo, okLo := toFloat64(items[0])
		hi, okHi := toFloat64(items[1])
		if !okLo || !okHi {
			return repository.ProductFilter{}, apperror.Validation(msgInvalidPriceRange)
		}
		return repository.ProductFilter{Kind: repository.FilterPrice, MinPrice: lo, MaxPrice: hi}, nil

	default:
		return repository.ProductFilter{}, apperror.ErrInvalidFilterKey
	}
}

func toSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toFloat64(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n, true
		}
	}
	f, ok := toFloat64(v)
	if !ok || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
