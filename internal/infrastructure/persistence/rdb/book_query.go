package rdb

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // 注册方言
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // 注册方言
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // 注册方言
	"github.com/doug-martin/goqu/v9/exp"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const (
	tableBook = "book"

	colBookID      = "book_id"
	colCategory    = "category"
	colTitle       = "title"
	colPress       = "press"
	colPublishYear = "publish_year"
	colAuthor      = "author"
	colPrice       = "price"
	colStock       = "stock"

	// likeEscape LIKE转义字符,三种方言都支持ESCAPE子句
	likeEscape = "!"
)

// goquDialect gorm方言名 → goqu方言名
func goquDialect(db *gorm.DB) string {
	switch name := db.Dialector.Name(); name {
	case "sqlite":
		return "sqlite3"
	default:
		return name
	}
}

// buildBookQuery 拼装图书查询SQL
// 1. 未设置的条件不参与过滤
// 2. ORDER BY <sort_by> <sort_order>, book_id ASC
// 3. 排序字段来自白名单,值全部由goqu按方言转义
func buildBookQuery(dialect string, q book.Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	selectStmt := goqu.Dialect(dialect).
		From(tableBook).
		Select(colBookID, colCategory, colTitle, colPress, colPublishYear, colAuthor, colPrice, colStock).
		Where(bookPredicates(q)...)

	sortCol := goqu.C(string(q.SortBy))
	if q.SortOrder == book.Desc {
		selectStmt = selectStmt.Order(sortCol.Desc())
	} else {
		selectStmt = selectStmt.Order(sortCol.Asc())
	}
	if q.SortBy != book.SortByID {
		selectStmt = selectStmt.OrderAppend(goqu.C(colBookID).Asc())
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", apperrors.Wrap(toSQLErr, "构建查询语句失败")
	}
	return sqlQuery, nil
}

func bookPredicates(q book.Query) []exp.Expression {
	predicates := make([]exp.Expression, 0)

	if q.Category != nil {
		predicates = append(predicates, goqu.C(colCategory).Eq(*q.Category))
	}
	if q.Title != nil {
		predicates = append(predicates, contains(colTitle, *q.Title))
	}
	if q.Press != nil {
		predicates = append(predicates, contains(colPress, *q.Press))
	}
	if q.Author != nil {
		predicates = append(predicates, contains(colAuthor, *q.Author))
	}
	if q.MinPublishYear != nil {
		predicates = append(predicates, goqu.C(colPublishYear).Gte(*q.MinPublishYear))
	}
	if q.MaxPublishYear != nil {
		predicates = append(predicates, goqu.C(colPublishYear).Lte(*q.MaxPublishYear))
	}
	if q.MinPrice != nil {
		predicates = append(predicates, goqu.C(colPrice).Gte(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		predicates = append(predicates, goqu.C(colPrice).Lte(*q.MaxPrice))
	}

	return predicates
}

// contains 子串匹配,%和_按字面值处理
func contains(col, s string) exp.Expression {
	return goqu.L("? LIKE ? ESCAPE '"+likeEscape+"'", goqu.C(col), "%"+escapeLike(s)+"%")
}

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
