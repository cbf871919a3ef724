package handler

import (
	"time"

	"github.com/rezkam/todos/internal/domain"
)

// TodoDTO is the serialized form of a todo.
type TodoDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// BulkUpdateResponse reports how many todos a bulk update touched.
type BulkUpdateResponse struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updated_count"`
}

// MapTodoToDTO converts domain.Todo to TodoDTO. Timestamps are emitted in UTC.
func MapTodoToDTO(todo *domain.Todo) TodoDTO {
	return TodoDTO{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt.UTC(),
		UpdatedAt: todo.UpdatedAt.UTC(),
	}
}

// MapTodosToDTO converts a slice of todos. The result is never nil so an
// empty listing encodes as [].
func MapTodosToDTO(todos []*domain.Todo) []TodoDTO {
	dtos := make([]TodoDTO, 0, len(todos))
	for _, todo := range todos {
		dtos = append(dtos, MapTodoToDTO(todo))
	}
	return dtos
}
