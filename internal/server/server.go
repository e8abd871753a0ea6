// Package server exposes the planner over HTTP: a single HTML page and a
// JSON endpoint.
package server

import (
	"context"
	_ "embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/travel-planner-agent/server/internal/planner"
)

//go:embed templates/index.html
var indexHTML string

const indexTemplate = "index.html"

// Planner produces a plan for a free-text travel request.
type Planner interface {
	Plan(ctx context.Context, text string) (*planner.Plan, error)
}

// New builds the gin engine with all routes registered.
func New(p Planner) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New(indexTemplate).Parse(indexHTML)))

	h := &handler{planner: p, markdown: newMarkdown()}
	registerRoutes(r, h)
	return r
}

// registerRoutes registers every HTTP route.
func registerRoutes(r *gin.Engine, h *handler) {
	r.GET("/", h.index)
	r.POST("/", h.submit)
	r.GET("/health", h.health)

	v1 := r.Group("/api/v1")
	v1.POST("/plans", h.createPlan)
}
