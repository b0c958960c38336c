package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

const productSelect = `
	SELECT p.id, p.category_id, p.title, p.description, p.price, p.quantity, p.created_at, p.updated_at,
	       c.id, c.name, c.created_at, c.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

// productColumns maps sortable columns to SQL. Nothing outside this map reaches ORDER BY.
var productColumns = map[repository.ProductColumn]string{
	repository.ColumnID:         "p.id",
	repository.ColumnCategoryID: "p.category_id",
	repository.ColumnTitle:      "p.title",
	repository.ColumnPrice:      "p.price",
	repository.ColumnQuantity:   "p.quantity",
	repository.ColumnCreatedAt:  "p.created_at",
	repository.ColumnUpdatedAt:  "p.updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildProductSelect renders q into SQL with positional arguments.
func buildProductSelect(q repository.ProductQuery) (string, []any, error) {
	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(productSelect)

	if f := q.Filter; f != nil {
		switch f.Kind {
		case repository.FilterTitle:
			sb.WriteString("\n\tWHERE p.title LIKE " + arg("%"+likeEscaper.Replace(f.Title)+"%"))
		case repository.FilterCategory:
			ids := f.CategoryIDs
			if ids == nil {
				ids = []int64{}
			}
			sb.WriteString("\n\tWHERE p.category_id = ANY(" + arg(ids) + ")")
		case repository.FilterPrice:
			sb.WriteString("\n\tWHERE p.price >= " + arg(f.MinPrice) + " AND p.price <= " + arg(f.MaxPrice))
		default:
			return "", nil, fmt.Errorf("unsupported product filter %q", f.Kind)
		}
	}

	if s := q.Sort; s != nil {
		col, ok := productColumns[s.Column]
		if !ok {
			return "", nil, fmt.Errorf("unsupported sort column %q", s.Column)
		}
		dir := "ASC"
		if s.Direction == repository.SortDesc {
			dir = "DESC"
		}
		sb.WriteString("\n\tORDER BY " + col + " " + dir)
		if col != "p.id" {
			sb.WriteString(", p.id " + dir)
		}
	} else {
		sb.WriteString("\n\tORDER BY p.id ASC")
	}

	if q.Limit > 0 {
		sb.WriteString("\n\tLIMIT " + arg(q.Limit))
	}
	return sb.String(), args, nil
}
