package repository

// ProductColumn names a sortable product column. Only the constants below are valid.
type ProductColumn string

const (
	ColumnID         ProductColumn = "id"
	ColumnCategoryID ProductColumn = "categoryId"
	ColumnTitle      ProductColumn = "title"
	ColumnPrice      ProductColumn = "price"
	ColumnQuantity   ProductColumn = "quantity"
	ColumnCreatedAt  ProductColumn = "createdAt"
	ColumnUpdatedAt  ProductColumn = "updatedAt"
)

// SortableColumns is the allow-list of columns a caller may order by.
var SortableColumns = []ProductColumn{
	ColumnID, ColumnCategoryID, ColumnTitle, ColumnPrice, ColumnQuantity, ColumnCreatedAt, ColumnUpdatedAt,
}

func (c ProductColumn) Valid() bool {
	for _, col := range SortableColumns {
		if c == col {
			return true
		}
	}
	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type ProductSort struct {
	Column    ProductColumn
	Direction SortDirection
}

type FilterKind string

const (
	FilterTitle    FilterKind = "title"
	FilterCategory FilterKind = "category"
	FilterPrice    FilterKind = "price"
)

// ProductFilter is a single predicate; only the fields matching Kind are read.
type ProductFilter struct {
	Kind        FilterKind
	Title       string
	CategoryIDs []int64
	MinPrice    float64
	MaxPrice    float64
}

// ProductQuery describes one store read. A zero Limit means no limit.
type ProductQuery struct {
	Filter *ProductFilter
	Sort   *ProductSort
	Limit  int
}
