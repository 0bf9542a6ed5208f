package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/service"
	"campus-voice/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportComplaints 导出投诉清单为 Excel
// GET /api/v1/export/complaints
func (h *ExportHandler) ExportComplaints(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportComplaints(c.Request.Context(), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoComplaints):
			response.NotFound(c, 16001, "当前可见范围内暂无投诉")
		case errors.Is(err, service.ErrComplaintAccessDenied):
			response.Forbidden(c, 14003, "当前角色无投诉可见范围")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
