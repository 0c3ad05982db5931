package models

// Todo - Model of a basic task
type Todo struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement" bson:"_id"`
	Title       string `json:"title" gorm:"not null" bson:"title"`
	Description string `json:"description" bson:"description"`
	Priority    int    `json:"priority" gorm:"not null;index" bson:"priority"`
	Complete    bool   `json:"complete" gorm:"not null" bson:"complete"`
}

// TableName keeps the table name stable regardless of gorm naming strategy.
func (Todo) TableName() string {
	return "todos"
}

// TodoRequest is the write payload for a todo.
type TodoRequest struct {
	Title       string `json:"title" validate:"min=3" example:"Learn Go"`
	Description string `json:"description" validate:"min=3,max=100" example:"Finish the tour"`
	Priority    int    `json:"priority" validate:"gt=0,lt=6" example:"3"`
	Complete    *bool  `json:"complete" validate:"required" example:"false"`
}

// Todo maps a validated request onto a Todo with the given id.
func (r TodoRequest) Todo(id int64) Todo {
	t := Todo{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
	}
	if r.Complete != nil {
		t.Complete = *r.Complete
	}
	return t
}

// TodoFilter selects todos by field. Nil fields match everything.
type TodoFilter struct {
	Priority *int
	Complete *bool
}

// Match reports whether t satisfies every set field of f.
func (f TodoFilter) Match(t Todo) bool {
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Complete != nil && t.Complete != *f.Complete {
		return false
	}
	return true
}

const (
	TodoEntity = "todo"
)
