package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	errx "github.com/travel-planner-agent/server/internal/core/error"
	logx "github.com/travel-planner-agent/server/pkg/logger"
)

const placeholder = "Plan a 3-day trip to London in May"

type handler struct {
	planner  Planner
	markdown *markdown
}

type pageData struct {
	Placeholder string
	Request     string
	City        string
	Warning     string
	Error       string
	Plan        template.HTML
}

// PlanRequest is the body of POST /api/v1/plans.
type PlanRequest struct {
	Request string `json:"request"`
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, pageData{Placeholder: placeholder})
}

func (h *handler) submit(c *gin.Context) {
	text := c.PostForm("request")
	data := pageData{Placeholder: placeholder, Request: text}

	plan, err := h.planner.Plan(c.Request.Context(), text)
	if err != nil {
		status := errx.StatusOf(err)
		if status < http.StatusInternalServerError {
			data.Warning = errx.MessageOf(err)
		} else {
			data.Error = "Failed to generate the travel plan: " + errx.MessageOf(err)
		}
		c.HTML(status, indexTemplate, data)
		return
	}

	rendered, err := h.markdown.Render(plan.Markdown)
	if err != nil {
		logx.Error().Err(err).Str("city", plan.City).Msg("Markdown rendering failed")
		data.Error = errx.SystemErrorMessage
		c.HTML(http.StatusInternalServerError, indexTemplate, data)
		return
	}
	data.City = plan.City
	data.Plan = rendered
	c.HTML(http.StatusOK, indexTemplate, data)
}

func (h *handler) createPlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), req.Request)
	if err != nil {
		c.JSON(errx.StatusOf(err), gin.H{"error": errx.MessageOf(err)})
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
