package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task is one to-do of a workflow, stored as JSON on workflows and orders.
type Task struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"isDone"`
}

// Workflow is a reusable checklist that can be copied onto an order.
type Workflow struct {
	ID      uuid.UUID                 `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID                 `gorm:"type:uuid;index;not null" json:"-"`
	Name    string                    `gorm:"not null" json:"name"`
	Tasks   datatypes.JSONSlice[Task] `json:"tasks"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *Workflow) BeforeCreate(tx *gorm.DB) (err error) {
	w.ID = uuid.New()
	return
}

// PendingTasks counts tasks not yet done.
func PendingTasks(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone {
			n++
		}
	}
	return n
}
