package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartlib/app"
	"smartlib/reporting"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// Dashboard serves the admin landing-page aggregates, all derived from
// the current collections at request time.
func (rc *ReportController) Dashboard(c *gin.Context) {
	d := reporting.Build(
		rc.Circ.Books(),
		rc.Circ.Borrowings(),
		time.Now().UTC(),
		rc.Config.LateFeePerBookDay,
	)
	c.JSON(http.StatusOK, app.H{"dashboard": d, "degraded": rc.Circ.Degraded()})
}

// ListActivities serves the audit trail, newest first (?limit=, default 100).
func (rc *ReportController) ListActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	activities, err := rc.Srv.Activities.ListActivities(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"activities": activities})
}
