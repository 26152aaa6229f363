package handler

import (
	"errors"
	"fmt"
	"net/http"

	"employee-enrollment/internal/service"
	"employee-enrollment/internal/store"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the HTML dashboard and the workbook download.
type DashboardHandler struct {
	Service *service.Service
}

func NewDashboardHandler(svc *service.Service) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

// Home renders every enrollment. Missing or unreadable workbooks are shown
// as a message on the page, never as an error response.
func (h *DashboardHandler) Home(c *gin.Context) {
	view := h.Service.RenderDashboard()
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title": "Admin Dashboard",
		"view":  view,
	})
}

// Download streams the workbook as an attachment.
func (h *DashboardHandler) Download(c *gin.Context) {
	exp, err := h.Service.Download()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.String(status, "Error: %v", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exp.FileName))
	c.Data(http.StatusOK, exp.ContentType, exp.Data)
}
