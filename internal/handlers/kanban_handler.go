package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

type KanbanHandler struct {
	repo domain.Repository
}

func NewKanbanHandler(repo domain.Repository) *KanbanHandler {
	return &KanbanHandler{repo: repo}
}

type CreateTaskRequest struct {
	Title    string            `json:"title" binding:"required"`
	ClientID *string           `json:"clientId"`
	Status   models.TaskStatus `json:"status"`
}

// UpdateTaskRequest: an empty clientId detaches the task from its client.
type UpdateTaskRequest struct {
	Title    *string            `json:"title"`
	ClientID *string            `json:"clientId"`
	Status   *models.TaskStatus `json:"status"`
}

func (h *KanbanHandler) List(c *gin.Context) {
	var out []models.KanbanTask
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		out = append(out, st.KanbanTasks...)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *KanbanHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	task := models.KanbanTask{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(req.Title),
		ClientID: req.ClientID,
		Status:   req.Status,
	}
	if task.Status == "" {
		task.Status = models.TaskTodo
	}
	if !task.Status.Valid() {
		writeError(c, httperr.ErrBusiness("invalid_status"))
		return
	}

	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		if task.ClientID != nil && st.Client(*task.ClientID) == nil {
			return httperr.ErrBusiness("client_not_found")
		}
		st.KanbanTasks = append(st.KanbanTasks, task)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, task)
}

func (h *KanbanHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	var out models.KanbanTask
	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		task := st.Task(id)
		if task == nil {
			return httperr.ErrBusiness("task_not_found")
		}

		next := *task
		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.Status != nil {
			if !req.Status.Valid() {
				return httperr.ErrBusiness("invalid_status")
			}
			next.Status = *req.Status
		}
		if req.ClientID != nil {
			if *req.ClientID == "" {
				next.ClientID = nil
			} else {
				if st.Client(*req.ClientID) == nil {
					return httperr.ErrBusiness("client_not_found")
				}
				cid := *req.ClientID
				next.ClientID = &cid
			}
		}

		*task = next
		out = next
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *KanbanHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		if !st.DeleteTask(id) {
			return httperr.ErrBusiness("task_not_found")
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
