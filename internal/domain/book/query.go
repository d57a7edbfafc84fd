package book

import "strings"

// SortField 排序字段(取值即列名)
type SortField string

const (
	SortByID          SortField = "book_id"
	SortByCategory    SortField = "category"
	SortByTitle       SortField = "title"
	SortByPress       SortField = "press"
	SortByPublishYear SortField = "publish_year"
	SortByAuthor      SortField = "author"
	SortByPrice       SortField = "price"
	SortByStock       SortField = "stock"
)

// SortOrder 排序方向
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

var sortFields = map[SortField]struct{}{
	SortByID:          {},
	SortByCategory:    {},
	SortByTitle:       {},
	SortByPress:       {},
	SortByPublishYear: {},
	SortByAuthor:      {},
	SortByPrice:       {},
	SortByStock:       {},
}

// ParseSortField 解析排序字段,支持列名和驼峰写法(publishYear)
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SortByID, nil
	case "book_id", "bookid", "id":
		return SortByID, nil
	case "publish_year", "publishyear":
		return SortByPublishYear, nil
	}
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortFields[f]; !ok {
		return "", ErrInvalidQuery
	}
	return f, nil
}

// ParseSortOrder 解析排序方向,空字符串为升序
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", ErrInvalidQuery
	}
}

// Query 图书查询条件
// 指针字段为nil表示不限制;
// Category精确匹配,Title/Press/Author子串匹配,年份和价格为闭区间;
// 结果按SortBy/SortOrder排序,再按book_id升序保证稳定
type Query struct {
	Category       *string
	Title          *string
	Press          *string
	Author         *string
	MinPublishYear *int
	MaxPublishYear *int
	MinPrice       *float64
	MaxPrice       *float64
	SortBy         SortField
	SortOrder      SortOrder
}

// Validate 校验排序参数,空值会被规范成默认值
func (q *Query) Validate() error {
	if q.SortBy == "" {
		q.SortBy = SortByID
	}
	if q.SortOrder == "" {
		q.SortOrder = Asc
	}
	if _, ok := sortFields[q.SortBy]; !ok {
		return ErrInvalidQuery
	}
	if q.SortOrder != Asc && q.SortOrder != Desc {
		return ErrInvalidQuery
	}
	return nil
}
