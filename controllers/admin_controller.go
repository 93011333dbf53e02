package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/civicreport/models"
	"github.com/cppla/civicreport/utils"
)

// Lister answers the review listing query.
type Lister interface {
	List(ctx context.Context, status string) []models.Submission
}

// AdminController renders the review dashboard.
type AdminController struct {
	lister Lister
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(lister Lister) *AdminController {
	return &AdminController{lister: lister}
}

type statusFilter struct {
	Label  string
	Href   string
	Active bool
}

var filterOptions = []struct{ label, status string }{
	{"All", ""},
	{"New", models.StatusNew},
	{"Verified", models.StatusVerified},
	{"Rejected", models.StatusRejected},
}

// Dashboard renders the submissions table for ?status=.
func (a *AdminController) Dashboard(ctx *gin.Context) {
	status := strings.TrimSpace(ctx.Query("status"))
	key := ctx.Query("key")

	filters := make([]statusFilter, 0, len(filterOptions))
	for _, opt := range filterOptions {
		filters = append(filters, statusFilter{
			Label:  opt.label,
			Href:   dashboardHref(opt.status, key),
			Active: opt.status == status,
		})
	}

	ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"Submissions": a.lister.List(ctx.Request.Context(), status),
		"Status":      status,
		"Filters":     filters,
	})
}

// ListSubmissions is the JSON form of the dashboard listing.
func (a *AdminController) ListSubmissions(ctx *gin.Context) {
	status := strings.TrimSpace(ctx.Query("status"))
	utils.Success(ctx, http.StatusOK, "submissions", a.lister.List(ctx.Request.Context(), status))
}

// dashboardHref keeps the access key on filter links so they stay inside the gate.
func dashboardHref(status, key string) string {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if key != "" {
		q.Set("key", key)
	}
	if len(q) == 0 {
		return "/admin"
	}
	return "/admin?" + q.Encode()
}
