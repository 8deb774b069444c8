// handlers/excel_handlers.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// ExcelHandler handles spreadsheet export requests
type ExcelHandler struct {
	excelService *services.ExcelService
}

// NewExcelHandler creates a new excel handler
func NewExcelHandler(excelService *services.ExcelService) *ExcelHandler {
	return &ExcelHandler{excelService: excelService}
}

// ExportTrip handles GET /trips/:id/export
func (h *ExcelHandler) ExportTrip(c *gin.Context) {
	tripID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, filename, err := h.excelService.ExportTrip(tripID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
