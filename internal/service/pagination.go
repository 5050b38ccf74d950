package service

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// normalizePage 非法分页参数回退到默认值，不向调用方报错
func normalizePage(page, pageSize, def, max int) (int, int) {
	if def <= 0 {
		def = defaultPageSize
	}
	if max <= 0 {
		max = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > max {
		pageSize = max
	}
	return page, pageSize
}
