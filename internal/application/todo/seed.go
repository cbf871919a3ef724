package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/rezkam/todos/internal/domain"
)

// SeedTodo describes one sample todo, created Age before the seed runs.
type SeedTodo struct {
	Title     string
	Completed bool
	Age       time.Duration
}

// SeedResult summarizes the table after seeding.
type SeedResult struct {
	Skipped   bool // table already had rows
	Inserted  int
	Total     int
	Completed int
	Pending   int
}

// DefaultSeedTodos spans "just now" to several months back so clients
// rendering relative times have every bucket to show.
var DefaultSeedTodos = []SeedTodo{
	{Title: "Just created task", Age: 30 * time.Second},
	{Title: "Very recent task", Age: 2 * time.Minute},
	{Title: "5 minutes ago task", Age: 5 * time.Minute},
	{Title: "15 minutes ago task", Completed: true, Age: 15 * time.Minute},
	{Title: "30 minutes ago task", Age: 30 * time.Minute},
	{Title: "45 minutes ago task", Completed: true, Age: 45 * time.Minute},
	{Title: "Exactly 1 hour ago task", Age: time.Hour},
	{Title: "2 hours ago task", Completed: true, Age: 2 * time.Hour},
	{Title: "6 hours ago task", Age: 6 * time.Hour},
	{Title: "12 hours ago task", Age: 12 * time.Hour},
	{Title: "23 hours ago task", Completed: true, Age: 23 * time.Hour},
	{Title: "Exactly 1 day ago task", Age: 24 * time.Hour},
	{Title: "2 days ago task", Completed: true, Age: 2 * 24 * time.Hour},
	{Title: "5 days ago task", Age: 5 * 24 * time.Hour},
	{Title: "1 week ago task", Completed: true, Age: 7 * 24 * time.Hour},
	{Title: "2 weeks ago task", Age: 14 * 24 * time.Hour},
	{Title: "1 month ago task", Completed: true, Age: 30 * 24 * time.Hour},
	{Title: "2 months ago task", Age: 60 * 24 * time.Hour},
	{Title: "3 months ago task", Completed: true, Age: 90 * 24 * time.Hour},
}

// Seed inserts samples in one transaction when the table is empty.
// A table that already has rows is left untouched.
func (s *Service) Seed(ctx context.Context, samples []SeedTodo) (*SeedResult, error) {
	existing, err := s.repo.CountTodos(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count todos: %w", err)
	}

	result := &SeedResult{}
	if existing > 0 {
		result.Skipped = true
	} else {
		now := domain.Now()
		err = s.repo.Atomic(ctx, func(tx Repository) error {
			for _, sample := range samples {
				title, err := domain.NewTitle(sample.Title)
				if err != nil {
					return fmt.Errorf("invalid seed todo %q: %w", sample.Title, err)
				}
				todo := domain.NewTodo(title, now.Add(-sample.Age))
				todo.Completed = sample.Completed
				if _, err := tx.CreateTodo(ctx, todo); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed todos: %w", err)
		}
		result.Inserted = len(samples)
	}

	total, err := s.repo.CountTodos(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count todos: %w", err)
	}
	completed := true
	done, err := s.repo.CountTodos(ctx, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed todos: %w", err)
	}

	result.Total = total
	result.Completed = done
	result.Pending = total - done
	return result, nil
}
