package repositories

import (
	"context"
	"fmt"
	"strings"

	"taskhub/backend/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines the interface for task data operations.
// All returns every row regardless of owner; the API deliberately exposes
// the full task list to any authenticated caller.
type TaskRepository interface {
	All(ctx context.Context) ([]models.Task, error)
	FindByID(ctx context.Context, id uint) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, task *models.Task) error
	SearchByTitle(ctx context.Context, fragment string) ([]models.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository instance.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) All(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find task %d: %w", id, err)
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Delete(task).Error; err != nil {
		return fmt.Errorf("failed to delete task %d: %w", task.ID, err)
	}
	return nil
}

func (r *taskRepository) SearchByTitle(ctx context.Context, fragment string) ([]models.Task, error) {
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks by title: %w", err)
	}
	return tasks, nil
}

// escapeLike neutralizes LIKE metacharacters so the fragment matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
