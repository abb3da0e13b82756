package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmendes/academia-api/internal/models"
	"github.com/rmendes/academia-api/internal/service"
	appErrors "github.com/rmendes/academia-api/pkg/errors"
	"github.com/rmendes/academia-api/pkg/response"
)

type studentService interface {
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Status(ctx context.Context, id string) (*models.StudentStatus, error)
	ListDelinquent(ctx context.Context) ([]models.Student, error)
}

// StudentHandler exposes aluno endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /alunos/ [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /alunos/ [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Delinquent godoc
// @Summary List delinquent students
// @Description Students without any payment on record
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /alunos/inadimplentes/ [get]
func (h *StudentHandler) Delinquent(c *gin.Context) {
	students, err := h.students.ListDelinquent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Status godoc
// @Summary Student status with payment history
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alunos/{id}/status [get]
func (h *StudentHandler) Status(c *gin.Context) {
	status, err := h.students.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}
