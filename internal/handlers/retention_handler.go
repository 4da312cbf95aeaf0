package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/retention"
)

type RetentionHandler struct {
	job *retention.Job
}

func NewRetentionHandler(job *retention.Job) *RetentionHandler {
	return &RetentionHandler{job: job}
}

// Run sends the retention nudges now instead of waiting for the schedule.
func (h *RetentionHandler) Run(c *gin.Context) {
	nudges, err := h.job.RunOnce(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, nudges)
}
