package domain

// Page описывает одну страницу элементов списка.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int // количество элементов на странице
	HasNext  bool
	HasPrev  bool
	Total    int // общее количество элементов
}

// DefaultPageSize — размер страницы списков бэк-офиса.
const DefaultPageSize = 10

// NormalizePage приводит номер страницы и размер к допустимым значениям.
func NormalizePage(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize
}

// NewPage собирает страницу из уже отфильтрованного хранилищем среза:
// items — элементы текущей страницы, total — общее число элементов.
func NewPage[T any](items []T, page, pageSize, total int) Page[T] {
	page, pageSize = NormalizePage(page, pageSize)

	end := (page-1)*pageSize + len(items)

	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}

// Paginate возвращает срез items для указанной страницы и метаданные.
// Используется для списков, которые строятся в памяти (например,
// объединение персонала и администраторов).
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	page, pageSize = NormalizePage(page, pageSize)

	total := len(items)

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
