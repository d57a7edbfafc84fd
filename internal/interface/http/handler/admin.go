package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/pkg/response"
)

// AdminHandler 维护操作处理器
type AdminHandler struct {
	svc *library.Service
}

// NewAdminHandler 创建维护操作处理器
func NewAdminHandler(svc *library.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Reset 清空并重建所有表
// @Summary      重置数据库
// @Description  删除并重建book、card、borrow三张表；仅在server.allow_reset开启时注册
// @Tags         维护
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.svc.ResetAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
