package services

import (
	"context"

	"taskhub/backend/internal/models"
	"taskhub/backend/internal/repositories"
	"taskhub/backend/internal/slug"
	"taskhub/backend/internal/validation"
)

// TaskCreateRequest carries the create form; every field is required.
type TaskCreateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Finished    *bool   `json:"finished"`
	Category    *string `json:"category"`
}

// TaskUpdateRequest carries a partial update; only supplied fields are
// validated and applied.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Finished    *bool   `json:"finished"`
	Category    *string `json:"category"`
}

// TaskService implements the task lifecycle. List and SearchByTitle return
// tasks of all users; the API exposes the full table to any authenticated
// caller and owner scoping is deliberately not applied.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, userID uint, req TaskCreateRequest) (*models.Task, error)
	Get(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, id uint, req TaskUpdateRequest) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
	SearchByTitle(ctx context.Context, fragment string) ([]models.Task, error)
}

type TaskServiceImpl struct {
	tasks repositories.TaskRepository
}

func NewTaskService(tasks repositories.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks}
}

func (s *TaskServiceImpl) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.All(ctx)
}

func (s *TaskServiceImpl) Create(ctx context.Context, userID uint, req TaskCreateRequest) (*models.Task, error) {
	errs := validation.Errors{}
	validation.TaskTitle(errs, req.Title, validation.Required)
	validation.TaskDescription(errs, req.Description, validation.Required)
	validation.TaskFinished(errs, req.Finished, validation.Required)
	validation.TaskCategory(errs, req.Category, validation.Required)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	task := &models.Task{
		Title:       *req.Title,
		Slug:        slug.Make(*req.Title),
		Description: *req.Description,
		Finished:    *req.Finished,
		Category:    *req.Category,
		UserID:      userID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) Get(ctx context.Context, id uint) (*models.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// Update applies the supplied subset of fields. The slug keeps the value
// derived at creation even when the title changes.
func (s *TaskServiceImpl) Update(ctx context.Context, id uint, req TaskUpdateRequest) (*models.Task, error) {
	errs := validation.Errors{}
	validation.TaskTitle(errs, req.Title, validation.Sometimes)
	validation.TaskDescription(errs, req.Description, validation.Sometimes)
	validation.TaskFinished(errs, req.Finished, validation.Sometimes)
	validation.TaskCategory(errs, req.Category, validation.Sometimes)
	if errs.Any() {
		return nil, &ValidationError{Fields: errs}
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Finished != nil {
		task.Finished = *req.Finished
	}
	if req.Category != nil {
		task.Category = *req.Category
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, id uint) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task)
}

func (s *TaskServiceImpl) SearchByTitle(ctx context.Context, fragment string) ([]models.Task, error) {
	return s.tasks.SearchByTitle(ctx, fragment)
}
