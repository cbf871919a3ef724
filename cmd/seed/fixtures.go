package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rezkam/todos/internal/application/todo"
)

var (
	ErrEmptyFixtures  = errors.New("fixture file has no todos")
	ErrUnknownFixture = errors.New("fixture file has unknown keys")
)

// fixtureFile mirrors a TOML file of the form:
//
//	[[todo]]
//	title = "Write release notes"
//	completed = true
//	age = "36h"
type fixtureFile struct {
	Todos []fixture `toml:"todo"`
}

type fixture struct {
	Title     string `toml:"title"`
	Completed bool   `toml:"completed"`
	Age       string `toml:"age"`
}

// loadFixtures reads seed todos from a TOML file. Titles are validated by
// the service when the todos are inserted.
func loadFixtures(path string) ([]todo.SeedTodo, error) {
	var file fixtureFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFixture, undecoded)
	}
	if len(file.Todos) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFixtures, path)
	}

	seeds := make([]todo.SeedTodo, 0, len(file.Todos))
	for i, f := range file.Todos {
		var age time.Duration
		if f.Age != "" {
			age, err = time.ParseDuration(f.Age)
			if err != nil {
				return nil, fmt.Errorf("todo %d: invalid age %q: %w", i+1, f.Age, err)
			}
			if age < 0 {
				return nil, fmt.Errorf("todo %d: age must not be negative", i+1)
			}
		}
		seeds = append(seeds, todo.SeedTodo{
			Title:     f.Title,
			Completed: f.Completed,
			Age:       age,
		})
	}
	return seeds, nil
}
