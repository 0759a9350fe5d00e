package controllers

import (
	"net/http"
	"strings"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskInput struct {
	ID     string `json:"id"`
	Label  string `json:"label" binding:"required"`
	IsDone bool   `json:"isDone"`
}

type WorkflowInput struct {
	Name  string      `json:"name" binding:"required"`
	Tasks []TaskInput `json:"tasks" binding:"dive"`
}

// tasks keeps the submitted order and gives new tasks an id.
func (in WorkflowInput) tasks() []models.Task {
	out := make([]models.Task, len(in.Tasks))
	for i, t := range in.Tasks {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		out[i] = models.Task{ID: id, Label: strings.TrimSpace(t.Label), IsDone: t.IsDone}
	}
	return out
}

type WorkflowController struct {
	Workflows repository.Store[models.Workflow]
}

func (wc *WorkflowController) CreateWorkflow(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	var input WorkflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	wf := models.Workflow{OwnerID: ownerID, Name: strings.TrimSpace(input.Name), Tasks: input.tasks()}
	if err := wc.Workflows.Create(c.Request.Context(), &wf); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wf)
}

func (wc *WorkflowController) GetWorkflows(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	workflows, err := wc.Workflows.Find(c.Request.Context(), ownerID, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workflows)
}

func (wc *WorkflowController) GetWorkflow(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	wf, err := wc.Workflows.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

// UpdateWorkflow replaces the template. Orders that already copied its
// tasks are not touched.
func (wc *WorkflowController) UpdateWorkflow(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input WorkflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	wf, err := wc.Workflows.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	wf.Name = strings.TrimSpace(input.Name)
	wf.Tasks = input.tasks()
	if err := wc.Workflows.Save(c.Request.Context(), wf); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf)
}

func (wc *WorkflowController) DeleteWorkflow(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := wc.Workflows.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workflow deleted successfully"})
}
