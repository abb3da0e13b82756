package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rmendes/academia-api/internal/models"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
	"github.com/rmendes/academia-api/pkg/export"
)

type delinquentLister interface {
	ListDelinquent(ctx context.Context) ([]models.Student, error)
}

// ReportFile is a rendered export ready to be served as a download.
type ReportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ReportService renders the delinquency roster as CSV or PDF.
type ReportService struct {
	students delinquentLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(students delinquentLister, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students: students,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

var reportHeaders = []string{"nome", "contato", "telefone", "forma_pagamento", "valor_mensalidade", "data_matricula"}

// ExportDelinquent renders the current delinquent roster in the requested
// format ("csv" or "pdf").
func (s *ReportService) ExportDelinquent(ctx context.Context, format string) (*ReportFile, error) {
	students, err := s.students.ListDelinquent(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: reportHeaders, Rows: make([]map[string]string, 0, len(students))}
	for _, st := range students {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"nome":              st.Nome,
			"contato":           st.Contato,
			"telefone":          st.Telefone,
			"forma_pagamento":   st.FormaPagamento,
			"valor_mensalidade": strconv.FormatFloat(st.ValorMensalidade, 'f', 2, 64),
			"data_matricula":    st.DataMatricula.Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ReportFile{Content: content, ContentType: "text/csv", Filename: fmt.Sprintf("inadimplentes-%s.csv", stamp)}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Alunos inadimplentes")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ReportFile{Content: content, ContentType: "application/pdf", Filename: fmt.Sprintf("inadimplentes-%s.pdf", stamp)}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
