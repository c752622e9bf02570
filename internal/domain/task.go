package domain

// Task statuses. New tasks default to StatusPending.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Task is a single task row. Deletes are hard deletes, so gorm.Model
// (with its DeletedAt column) is intentionally not embedded.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Status      string `gorm:"not null;default:pending" json:"status"`
	UserID      uint   `gorm:"not null" json:"userId"`
}

// TaskPatch is a partial update of a task's mutable fields. A nil pointer
// means the field was absent from the request; a non-nil pointer applies,
// even when it points at an empty string.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// IsZero reports whether the patch contains no fields at all.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}
