package handler

import (
	"net/http"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/repository"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportServiceInterface
}

func NewReportHandler(reportService service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetReport - GET /report и GET /report/:storeId
// from и to необязательны, границы включительные
func (h *ReportHandler) GetReport(c *gin.Context) {
	filter := repository.NewReviewFilter(c.Param("storeId"), c.Query("from"), c.Query("to"))

	summary, err := h.reportService.GetReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
