package library

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookCSVFields 每行字段数:category,title,press,publish_year,author,price,stock
const bookCSVFields = 7

// ParseBookCSV 解析批量入库文件
// 1. 第一行首字段为category时视为表头跳过
// 2. 空行跳过,字段两端空白去掉
// 3. 出错时返回带行号的参数错误
func ParseBookCSV(r io.Reader) ([]*book.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = bookCSVFields
	reader.TrimLeadingSpace = true

	var books []*book.Book
	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, invalidLine(parseErr.Line, parseErr.Err.Error())
			}
			return nil, apperrors.WrapCode(err, apperrors.ErrCodeInvalidParams, "读取CSV失败")
		}

		line, _ := reader.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(record[0]), "category") {
			continue
		}

		b, err := parseBookRecord(record)
		if err != nil {
			return nil, invalidLine(line, err.Error())
		}
		books = append(books, b)
	}
	return books, nil
}

func parseBookRecord(record []string) (*book.Book, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	year, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("出版年份不是整数: %q", record[3])
	}
	price, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return nil, fmt.Errorf("价格不是数字: %q", record[5])
	}
	stock, err := strconv.Atoi(record[6])
	if err != nil {
		return nil, fmt.Errorf("库存不是整数: %q", record[6])
	}

	b := &book.Book{
		Category:    record[0],
		Title:       record[1],
		Press:       record[2],
		PublishYear: year,
		Author:      record[4],
		Price:       price,
		Stock:       stock,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func invalidLine(line int, reason string) error {
	return apperrors.New(apperrors.ErrCodeInvalidParams, fmt.Sprintf("第%d行: %s", line, reason))
}

// ImportBooks 解析CSV并整批入库,返回入库数量
func (s *Service) ImportBooks(ctx context.Context, r io.Reader) (int, error) {
	books, err := ParseBookCSV(r)
	if err != nil {
		return 0, err
	}
	if err := s.StoreBooks(ctx, books); err != nil {
		return 0, err
	}
	return len(books), nil
}
