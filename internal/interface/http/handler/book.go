package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	svc *library.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(svc *library.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// StoreBook 新书入库
// @Summary      新书入库
// @Description  (类别,书名,出版社,年份,作者)相同的图书已存在时返回重复错误
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.StoreBookResponse}
// @Failure      200 {object} response.Response "40009 图书已存在 / 40900 参数错误"
// @Router       /api/v1/books [post]
func (h *BookHandler) StoreBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.svc.StoreBook(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.StoreBookResponse{BookID: id})
}

// StoreBooks 批量入库
// @Summary      批量入库
// @Description  按顺序入库，任何一本失败则整批不入库
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchBookRequest true "图书列表"
// @Success      200 {object} response.Response{data=dto.BatchStoreResponse}
// @Router       /api/v1/books/batch [post]
func (h *BookHandler) StoreBooks(c *gin.Context) {
	var req dto.BatchBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	books := make([]*book.Book, len(req.Books))
	for i := range req.Books {
		books[i] = req.Books[i].ToEntity()
	}
	if err := h.svc.StoreBooks(c.Request.Context(), books); err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	response.Success(c, dto.BatchStoreResponse{BookIDs: ids, Count: len(ids)})
}

// ImportBooks CSV批量导入
// @Summary      CSV批量导入
// @Description  每行 category,title,press,publish_year,author,price,stock，可带表头
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV文件"
// @Success      200 {object} response.Response{data=dto.ImportBooksResponse}
// @Router       /api/v1/books/import [post]
func (h *BookHandler) ImportBooks(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		bindError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		bindError(c, err)
		return
	}
	defer file.Close()

	n, err := h.svc.ImportBooks(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ImportBooksResponse{Count: n})
}

// QueryBooks 查询图书
// @Summary      查询图书
// @Description  类别精确匹配，书名/出版社/作者子串匹配，年份和价格为闭区间；不带参数时返回全部图书
// @Tags         图书
// @Produce      json
// @Param        category          query string  false "类别"
// @Param        title             query string  false "书名(子串)"
// @Param        press             query string  false "出版社(子串)"
// @Param        author            query string  false "作者(子串)"
// @Param        min_publish_year  query int     false "最早出版年份"
// @Param        max_publish_year  query int     false "最晚出版年份"
// @Param        min_price         query number  false "最低价格"
// @Param        max_price         query number  false "最高价格"
// @Param        sort_by           query string  false "排序字段" Enums(book_id,category,title,press,publish_year,author,price,stock)
// @Param        sort_order        query string  false "排序方向" Enums(asc,desc)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) QueryBooks(c *gin.Context) {
	var req dto.QueryBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	var (
		books []*book.Book
		err   error
	)
	if len(c.Request.URL.Query()) == 0 {
		books, err = h.svc.ListBooks(c.Request.Context())
	} else {
		q, qErr := req.ToQuery()
		if qErr != nil {
			response.Error(c, qErr)
			return
		}
		books, err = h.svc.QueryBooks(c.Request.Context(), q)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(books))
}

// ModifyBook 修改图书信息
// @Summary      修改图书信息
// @Description  覆盖类别、书名、出版社、年份、作者、价格，不修改库存
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.ModifyBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) ModifyBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ModifyBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.svc.ModifyBook(c.Request.Context(), req.ToEntity(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AdjustStock 调整库存
// @Summary      调整库存
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int                    true "图书ID"
// @Param        request body dto.AdjustStockRequest true "库存增量"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40006 库存不能为负数"
// @Router       /api/v1/books/{id}/stock [patch]
func (h *BookHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.svc.AdjustStock(c.Request.Context(), id, *req.Delta); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveBook 删除图书
// @Summary      删除图书
// @Description  有未归还的借阅时不能删除
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// =========================================
// 辅助函数
// =========================================

// bindError 参数绑定失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
}

// pathID 解析路径中的:id,失败时直接写出错误响应
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: 非法的ID "+c.Param("id"))
		return 0, false
	}
	return uint(id), true
}
