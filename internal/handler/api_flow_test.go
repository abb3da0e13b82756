package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rmendes/academia-api/internal/middleware"
	"github.com/rmendes/academia-api/internal/models"
	"github.com/rmendes/academia-api/internal/service"
	"github.com/rmendes/academia-api/pkg/response"
)

// memoryStore backs the repositories for full-flow tests without a database.
type memoryStore struct {
	mu          sync.Mutex
	credentials map[string]*models.Credential
	students    map[string]*models.Student
	order       []string
	payments    map[string][]models.Payment
	seq         int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		credentials: make(map[string]*models.Credential),
		students:    make(map[string]*models.Student),
		payments:    make(map[string][]models.Payment),
	}
}

func (s *memoryStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + time.Now().Format("150405") + "-" + string(rune('a'+s.seq%26))
}

func (s *memoryStore) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.credentials[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cred, nil
}

func (s *memoryStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.credentials[username]
	return ok, nil
}

func (s *memoryStore) Create(ctx context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred.ID = s.nextID("cred")
	cred.CreatedAt = time.Now().UTC()
	s.credentials[cred.Username] = cred
	return nil
}

type memoryStudentRepo struct{ store *memoryStore }

func (r *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	student.ID = r.store.nextID("aluno")
	student.CreatedAt = time.Now().UTC()
	student.UpdatedAt = student.CreatedAt
	r.store.students[student.ID] = student
	r.store.order = append(r.store.order, student.ID)
	return nil
}

func (r *memoryStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]models.Student, 0, len(r.store.order))
	for _, id := range r.store.order {
		out = append(out, *r.store.students[id])
	}
	return out, nil
}

func (r *memoryStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	student, ok := r.store.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return student, nil
}

func (r *memoryStudentRepo) ListDelinquent(ctx context.Context) ([]models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []models.Student{}
	for _, id := range r.store.order {
		if len(r.store.payments[id]) == 0 {
			out = append(out, *r.store.students[id])
		}
	}
	return out, nil
}

type memoryPaymentRepo struct{ store *memoryStore }

func (r *memoryPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	payment.ID = r.store.nextID("pag")
	payment.CreatedAt = time.Now().UTC()
	r.store.payments[payment.AlunoID] = append(r.store.payments[payment.AlunoID], *payment)
	return nil
}

func (r *memoryPaymentRepo) ListByStudent(ctx context.Context, alunoID string) ([]models.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.payments[alunoID], nil
}

func newTestAPI(t *testing.T) (*gin.Engine, *memoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	studentRepo := &memoryStudentRepo{store: store}
	paymentRepo := &memoryPaymentRepo{store: store}
	logr := zap.NewNop()

	authSvc := service.NewAuthService(store, nil, logr, service.AuthConfig{
		Secret:      "test-secret",
		TokenExpiry: 30 * time.Minute,
		Issuer:      "academia-api",
	})
	credentialSvc := service.NewCredentialService(store, nil, logr)
	studentSvc := service.NewStudentService(studentRepo, paymentRepo, nil, nil, nil, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, nil, nil, logr)
	reportSvc := service.NewReportService(studentSvc, logr)

	require.NoError(t, credentialSvc.EnsureDefaultAdmin(context.Background(), "admin", "1234"))

	authHandler := NewAuthHandler(authSvc)
	credentialHandler := NewCredentialHandler(credentialSvc)
	studentHandler := NewStudentHandler(studentSvc)
	paymentHandler := NewPaymentHandler(paymentSvc)
	reportHandler := NewReportHandler(reportSvc)

	r := gin.New()
	r.POST("/token", authHandler.Token)
	r.POST("/login/", authHandler.Login)
	r.POST("/usuarios/", credentialHandler.Create)

	protected := r.Group("/", middleware.JWT(authSvc))
	{
		protected.GET("/me", credentialHandler.Me)
		protected.POST("/alunos/", studentHandler.Create)
		protected.GET("/alunos/", studentHandler.List)
		protected.GET("/alunos/inadimplentes/", studentHandler.Delinquent)
		protected.GET("/alunos/inadimplentes/export", reportHandler.ExportDelinquent)
		protected.GET("/alunos/:id/status", studentHandler.Status)
		protected.POST("/pagamentos/", paymentHandler.Create)
	}
	return r, store
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func extractToken(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndAccessFlow(t *testing.T) {
	router, _ := newTestAPI(t)

	// Register a fresh account, then authenticate with it.
	w := doJSON(router, http.MethodPost, "/usuarios/", `{"username":"admin2","password":"pw1234"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/login/", `{"username":"admin2","password":"pw1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w)

	// Without the token the roster is off limits.
	w = doJSON(router, http.MethodGet, "/alunos/", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// With it the roster opens up.
	w = doJSON(router, http.MethodGet, "/alunos/", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin2"`)
}

func TestDefaultAdminCanAuthenticate(t *testing.T) {
	router, _ := newTestAPI(t)

	form := "username=admin&password=1234"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	extractToken(t, w)
}

func TestDuplicateAccountRegistration(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(router, http.MethodPost, "/usuarios/", `{"username":"treinador","password":"pw1234"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/usuarios/", `{"username":"treinador","password":"other9"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username already registered")
}

func TestDelinquencyLifecycle(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(router, http.MethodPost, "/login/", `{"username":"admin","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w)

	w = doJSON(router, http.MethodPost, "/alunos/", `{"nome":"Maria Silva","contato":"maria@example.com","forma_pagamento":"pix","valor_mensalidade":120}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	created, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	alunoID := created["id"].(string)

	// A student with no payments shows up as delinquent.
	w = doJSON(router, http.MethodGet, "/alunos/inadimplentes/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maria Silva")

	// Recording a payment clears the student from the roster.
	w = doJSON(router, http.MethodPost, "/pagamentos/", `{"aluno_id":"`+alunoID+`","periodo":"2026-08"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/alunos/inadimplentes/", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Maria Silva")

	// The status view now lists the payment.
	w = doJSON(router, http.MethodGet, "/alunos/"+alunoID+"/status", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"periodo":"2026-08"`)
}

func TestPaymentForUnknownStudentVia404(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(router, http.MethodPost, "/login/", `{"username":"admin","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w)

	w = doJSON(router, http.MethodPost, "/pagamentos/", `{"aluno_id":"does-not-exist","periodo":"2026-08"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "student not found")
}

func TestDelinquencyExportDownload(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doJSON(router, http.MethodPost, "/login/", `{"username":"admin","password":"1234"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w)

	w = doJSON(router, http.MethodPost, "/alunos/", `{"nome":"Joao Souza","contato":"joao@example.com","forma_pagamento":"boleto","valor_mensalidade":99.9}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/alunos/inadimplentes/export?format=csv", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inadimplentes-")
	assert.Contains(t, w.Body.String(), "Joao Souza")
}
