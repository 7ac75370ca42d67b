package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/app/middleware"
	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/query"
	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

// ReportController handles incident report requests
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController creates a new report controller
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc returns a gin handler for report requests
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "getReports":
			controller.GetReports()
		case "getReport":
			controller.GetReport()
		case "createReport":
			controller.CreateReport()
		case "updateReport":
			controller.UpdateReport()
		case "getSummary":
			controller.GetSummary()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// parseIDParam reads a positive integer path parameter
func (r *ReportController) parseIDParam(name string) (uint, bool) {
	id, err := parseUintParam(r.Ctx.Param(name))
	if err != nil {
		response.FailWithMessage(r.Ctx, code.ErrValidation, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// parseDateQuery reads an optional date query parameter in either
// RFC3339 or plain YYYY-MM-DD form
func (r *ReportController) parseDateQuery(name string) (*time.Time, bool) {
	raw := r.Ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	response.FailWithMessage(r.Ctx, code.ErrValidation, "invalid "+name+", expected RFC3339 or YYYY-MM-DD", nil)
	return nil, false
}

// GetReports lists incident reports
// @Summary      List incident reports
// @Description  Reports filtered by status, severity and incident date range, newest incident first
// @Tags         report
// @Produce      json
// @Security     BearerAuth
// @Param        status   query string false "Status filter: open, in-progress, resolved, closed"
// @Param        severity query string false "Severity filter: low, medium, high, critical"
// @Param        from     query string false "Inclusive lower bound on incident date"
// @Param        to       query string false "Inclusive upper bound on incident date"
// @Success      200 {object} response.Response{data=[]models.IncidentReport}
// @Failure      403 {object} ErrorResponse
// @Router       /reports [get]
func (r *ReportController) GetReports() {
	from, ok := r.parseDateQuery("from")
	if !ok {
		return
	}
	to, ok := r.parseDateQuery("to")
	if !ok {
		return
	}

	filter := query.ReportFilter{
		Status:   models.ReportStatus(r.Ctx.Query("status")),
		Severity: models.ReportSeverity(r.Ctx.Query("severity")),
		From:     from,
		To:       to,
	}

	reportService := r.Container.GetService("report").(services.InterfaceReportService)

	reports, err := reportService.ListReports(middleware.CurrentActor(r.Ctx), filter)
	if err != nil {
		handleServiceError(r.Ctx, err)
		return
	}
	response.Success(r.Ctx, reports)
}

// GetReport returns a single incident report
// @Summary      Get incident report
// @Tags         report
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200 {object} response.Response{data=models.IncidentReport}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /reports/{id} [get]
func (r *ReportController) GetReport() {
	id, ok := r.parseIDParam("id")
	if !ok {
		return
	}

	reportService := r.Container.GetService("report").(services.InterfaceReportService)

	report, err := reportService.GetReport(middleware.CurrentActor(r.Ctx), id)
	if err != nil {
		handleServiceError(r.Ctx, err)
		return
	}
	response.Success(r.Ctx, report)
}

// CreateReport creates a new incident report
// @Summary      Create incident report
// @Description  Supervisors and admins only. Status defaults to open when omitted.
// @Tags         report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ReportDraft true "Report fields"
// @Success      200 {object} response.Response{data=models.IncidentReport}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /reports [post]
func (r *ReportController) CreateReport() {
	var draft services.ReportDraft
	if err := r.Ctx.ShouldBindJSON(&draft); err != nil {
		response.FailWithMessage(r.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	reportService := r.Container.GetService("report").(services.InterfaceReportService)

	report, err := reportService.CreateReport(middleware.CurrentActor(r.Ctx), draft)
	if err != nil {
		handleServiceError(r.Ctx, err)
		return
	}
	response.Success(r.Ctx, report)
}

// UpdateReport edits an existing incident report
// @Summary      Update incident report
// @Description  Supervisors and admins only. Unknown ids are an error, never an implicit create.
// @Tags         report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "Report ID"
// @Param        request body services.ReportDraft true "Report fields"
// @Success      200 {object} response.Response{data=models.IncidentReport}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /reports/{id} [put]
func (r *ReportController) UpdateReport() {
	id, ok := r.parseIDParam("id")
	if !ok {
		return
	}

	var draft services.ReportDraft
	if err := r.Ctx.ShouldBindJSON(&draft); err != nil {
		response.FailWithMessage(r.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	reportService := r.Container.GetService("report").(services.InterfaceReportService)

	report, err := reportService.UpdateReport(middleware.CurrentActor(r.Ctx), id, draft)
	if err != nil {
		handleServiceError(r.Ctx, err)
		return
	}
	response.Success(r.Ctx, report)
}

// GetSummary aggregates report counts by status and severity
// @Summary      Report summary
// @Tags         report
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=models.ReportSummary}
// @Failure      403 {object} ErrorResponse
// @Router       /reports/summary [get]
func (r *ReportController) GetSummary() {
	reportService := r.Container.GetService("report").(services.InterfaceReportService)

	summary, err := reportService.Summary(middleware.CurrentActor(r.Ctx))
	if err != nil {
		handleServiceError(r.Ctx, err)
		return
	}
	response.Success(r.Ctx, summary)
}
