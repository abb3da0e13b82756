package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmendes/academia-api/internal/service"
	"github.com/rmendes/academia-api/pkg/response"
)

type reportService interface {
	ExportDelinquent(ctx context.Context, format string) (*service.ReportFile, error)
}

// ReportHandler serves downloadable exports of the delinquency roster.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ExportDelinquent godoc
// @Summary Export delinquent students
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /alunos/inadimplentes/export [get]
func (h *ReportHandler) ExportDelinquent(c *gin.Context) {
	file, err := h.reports.ExportDelinquent(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
