package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
)

func TestPrintSummary(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, &todo.SeedResult{Inserted: 19, Total: 19, Completed: 8, Pending: 11})

		assert.Equal(t, "Created 19 test todos.\n"+
			"Summary:\n"+
			"   Total todos: 19\n"+
			"   Completed: 8\n"+
			"   Pending: 11\n", buf.String())
	})

	t.Run("skipped", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, &todo.SeedResult{Skipped: true, Total: 3, Completed: 1, Pending: 2})

		assert.Contains(t, buf.String(), "Database already contains 3 todos. Skipping test data creation.")
		assert.Contains(t, buf.String(), "   Pending: 2\n")
	})
}

func writeFixtures(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFixtures(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFixtures(t, `
[[todo]]
title = "Write release notes"
completed = true
age = "36h"

[[todo]]
title = "Fresh task"
`)
		seeds, err := loadFixtures(path)
		require.NoError(t, err)
		assert.Equal(t, []todo.SeedTodo{
			{Title: "Write release notes", Completed: true, Age: 36 * time.Hour},
			{Title: "Fresh task"},
		}, seeds)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeFixtures(t, "[[todo]]\ntitle = \"x\"\ndone = true\n")
		_, err := loadFixtures(path)
		assert.ErrorIs(t, err, ErrUnknownFixture)
	})

	t.Run("no todos", func(t *testing.T) {
		path := writeFixtures(t, "# nothing here\n")
		_, err := loadFixtures(path)
		assert.ErrorIs(t, err, ErrEmptyFixtures)
	})

	t.Run("bad age", func(t *testing.T) {
		path := writeFixtures(t, "[[todo]]\ntitle = \"x\"\nage = \"yesterday\"\n")
		_, err := loadFixtures(path)
		assert.ErrorContains(t, err, "invalid age")
	})

	t.Run("negative age", func(t *testing.T) {
		path := writeFixtures(t, "[[todo]]\ntitle = \"x\"\nage = \"-1h\"\n")
		_, err := loadFixtures(path)
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadFixtures(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}
