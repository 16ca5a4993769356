package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/services"
	"taskhub/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MockTaskService struct {
	tasks             []models.Task
	shouldReturnError bool
	returnNotFound    bool
	validationErrs    validation.Errors
}

func (m *MockTaskService) List(ctx context.Context) ([]models.Task, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	return m.tasks, nil
}

func (m *MockTaskService) Create(ctx context.Context, userID uint, req services.TaskCreateRequest) (*models.Task, error) {
	if m.validationErrs != nil {
		return nil, &services.ValidationError{Fields: m.validationErrs}
	}
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	task := models.Task{ID: 1, Title: "Test Task", Slug: "test-task", Category: "work", UserID: userID}
	m.tasks = append(m.tasks, task)
	return &task, nil
}

func (m *MockTaskService) Get(ctx context.Context, id uint) (*models.Task, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return nil, fmt.Errorf("failed to find task %d: %w", id, gorm.ErrRecordNotFound)
	}
	return &models.Task{ID: id, Title: "Test Task", Slug: "test-task", Category: "work"}, nil
}

func (m *MockTaskService) Update(ctx context.Context, id uint, req services.TaskUpdateRequest) (*models.Task, error) {
	if m.validationErrs != nil {
		return nil, &services.ValidationError{Fields: m.validationErrs}
	}
	if m.returnNotFound {
		return nil, fmt.Errorf("failed to find task %d: %w", id, gorm.ErrRecordNotFound)
	}
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	return &models.Task{ID: id, Title: "Updated Task", Slug: "test-task", Category: "work"}, nil
}

func (m *MockTaskService) Delete(ctx context.Context, id uint) error {
	if m.returnNotFound {
		return fmt.Errorf("failed to find task %d: %w", id, gorm.ErrRecordNotFound)
	}
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	return nil
}

func (m *MockTaskService) SearchByTitle(ctx context.Context, fragment string) ([]models.Task, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	var matches []models.Task
	for _, task := range m.tasks {
		if strings.Contains(strings.ToLower(task.Title), strings.ToLower(fragment)) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

func setupTaskRouter() (*MockTaskService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	mockService := &MockTaskService{}
	handler := handlers.NewTaskHandler(mockService)

	router := gin.New()
	// Stand-in for the auth middleware.
	router.Use(func(c *gin.Context) {
		c.Set("user", &models.User{ID: 9, Name: "Tester", Email: "tester@example.com"})
		c.Set("user_id", uint(9))
		c.Next()
	})

	router.GET("/tasks", handler.Index)
	router.POST("/tasks", handler.Store)
	router.GET("/tasks/search/:fragment", handler.Search)
	router.GET("/tasks/:id", handler.Show)
	router.PUT("/tasks/:id", handler.Update)
	router.DELETE("/tasks/:id", handler.Destroy)

	return mockService, router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response %s: %v", w.Body.String(), err)
	}
	return body
}

func TestIndex(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.tasks = []models.Task{
		{ID: 1, Title: "Task 1"},
		{ID: 2, Title: "Another Task"},
	}

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("Expected success true")
	}
	if body["message"] != "Tasks successfully retrieved from the DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 2 {
		t.Errorf("Expected 2 tasks in data, got %v", body["data"])
	}
}

func TestIndex_Empty(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "There are no tasks in the DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 0 {
		t.Errorf("Expected empty data array, got %v", body["data"])
	}
}

// The list endpoint reports internal failures with status 200 and
// success:false, unlike every other endpoint. Upstream behavior, kept.
func TestIndex_InternalErrorStaysOK(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.shouldReturnError = true

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != false {
		t.Error("Expected success false")
	}
	if body["message"] != "Error occured while trying to retrieve tasks from DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if body["error_message"] == nil {
		t.Error("Expected error_message to be present")
	}
}

func TestStore(t *testing.T) {
	_, router := setupTaskRouter()

	payload := `{"title":"Test Task","description":"d","finished":false,"category":"work"}`
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "New task successfully created" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected task in data, got %v", body["data"])
	}
	if data["user_id"] != float64(9) {
		t.Errorf("Expected owner 9, got %v", data["user_id"])
	}
}

func TestStore_ValidationError(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.validationErrs = validation.Errors{
		"category": {"The selected category is invalid."},
	}

	payload := `{"title":"t","description":"d","finished":false,"category":"urgent"}`
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Validation failed while trying to create new task" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if body["error_message"] == nil {
		t.Error("Expected field errors in error_message")
	}
}

func TestStore_InvalidJSON(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestShow(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("GET", "/tasks/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task with id: 3 successfully retrieved from the DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestShow_NotFound(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.returnNotFound = true

	req, _ := http.NewRequest("GET", "/tasks/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task with id 42 not found in the DB." {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestShow_NonNumericID(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("GET", "/tasks/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task with id abc not found in the DB." {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestUpdate(t *testing.T) {
	_, router := setupTaskRouter()

	payload := `{"finished":true}`
	req, _ := http.NewRequest("PUT", "/tasks/5", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task with id 5 successfully updated" {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestUpdate_NotFound(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.returnNotFound = true

	payload := `{"finished":true}`
	req, _ := http.NewRequest("PUT", "/tasks/42", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDestroy(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("DELETE", "/tasks/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Task with id: 7 successfully deleted from the DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
}

func TestDestroy_NotFound(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.returnNotFound = true

	req, _ := http.NewRequest("DELETE", "/tasks/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestSearch(t *testing.T) {
	mockService, router := setupTaskRouter()
	mockService.tasks = []models.Task{
		{ID: 1, Title: "Task 1"},
		{ID: 2, Title: "Another Task"},
		{ID: 3, Title: "Groceries"},
	}

	req, _ := http.NewRequest("GET", "/tasks/search/task", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["message"] != "Tasks that match search criteria: 'task' successfully retrieved from the DB" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 2 {
		t.Errorf("Expected 2 matches, got %v", body["data"])
	}
}

func TestSearch_NoMatches(t *testing.T) {
	_, router := setupTaskRouter()

	req, _ := http.NewRequest("GET", "/tasks/search/zzz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// An empty search result is still a success.
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("Expected success true")
	}
	if body["message"] != "No tasks found matching the search criteria: 'zzz'" {
		t.Errorf("Unexpected message %v", body["message"])
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 0 {
		t.Errorf("Expected empty data array, got %v", body["data"])
	}
}
