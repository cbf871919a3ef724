package domain

// ListTodosParams filters the todo listing.
// A nil Completed returns every todo.
type ListTodosParams struct {
	Completed *bool
}

// CreateTodoInput carries the fields accepted when creating a todo.
type CreateTodoInput struct {
	Title string
}

// UpdateTodoParams describes a partial update. Nil fields are left unchanged;
// UpdatedAt is stamped even when every field is nil.
type UpdateTodoParams struct {
	ID        int64
	Title     *string
	Completed *bool
}

// BulkUpdateParams applies the same change to many todos.
// IDs that do not exist are skipped. Only Completed is applied; UpdatedAt
// is stamped on every matched row.
type BulkUpdateParams struct {
	IDs       []int64
	Completed *bool
}
