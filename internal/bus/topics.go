package bus

import "todos-cli/internal/model"

// Topic names a message kind on the bus.
type Topic string

const (
	RenderRenameInputRequest Topic = "RENDER_RENAME_INPUT_REQUEST"
	RenameCategoryRequest    Topic = "RENAME_CATEGORY_REQUEST"
	CreateCategoryRequest    Topic = "CREATE_CATEGORY_REQUEST"
	DeleteCategoryRequest    Topic = "DELETE_CATEGORY_REQUEST"
	CreateTodoRequest        Topic = "CREATE_TODO_REQUEST"
	EditTodoRequest          Topic = "EDIT_TODO_REQUEST"
	DeleteTodoRequest        Topic = "DELETE_TODO_REQUEST"
	ToggleTodoRequest        Topic = "TOGGLE_TODO_REQUEST"
	SortCategoryRequest      Topic = "SORT_CATEGORY_REQUEST"
	FilterCategoryRequest    Topic = "FILTER_CATEGORY_REQUEST"
	StateChanged             Topic = "STATE_CHANGED"
)

// RenameLocation says which label a rename input replaces.
type RenameLocation int

const (
	RenameInSidebar RenameLocation = iota
	RenameInContentHeader
)

type RenderRenameInput struct {
	Location   RenameLocation
	CategoryID string
}

type RenameCategory struct {
	CategoryID string
	NewName    string
}

type CreateCategory struct {
	Name string
}

type DeleteCategory struct {
	CategoryID  string
	DeleteTodos bool
}

// TodoInput carries the user-editable todo fields.
type TodoInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     string
	CategoryID  string
}

type CreateTodo struct {
	Input TodoInput
}

type EditTodo struct {
	TodoID string
	Input  TodoInput
}

type DeleteTodo struct {
	TodoID string
}

type ToggleTodo struct {
	TodoID string
}

type SortCategory struct {
	CategoryID string
	Method     model.SortMethod
}

type FilterCategory struct {
	CategoryID string
	Method     model.FilterMethod
}

// Change describes what the organizer mutated.
type Change struct {
	Topic      Topic
	CategoryID string
	TodoID     string
}
