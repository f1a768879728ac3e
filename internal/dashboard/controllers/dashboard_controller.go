package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	"github.com/klinikita/pasien-admin/internal/dashboard/services"
	"github.com/klinikita/pasien-admin/internal/pasien/filters"
	pasienServices "github.com/klinikita/pasien-admin/internal/pasien/services"
)

type DashboardController struct {
	Service       *services.DashboardService
	PasienService *pasienServices.PasienService
	ExportService *pasienServices.ExportService
}

func NewDashboardController(svc *services.DashboardService, pasienSvc *pasienServices.PasienService, exportSvc *pasienServices.ExportService) *DashboardController {
	return &DashboardController{Service: svc, PasienService: pasienSvc, ExportService: exportSvc}
}

// buildSpec menyusun FilterSpec dari query param; dipakai identik oleh
// dashboard dan export supaya kedua tampilan melihat data yang sama.
func buildSpec(c echo.Context) filters.FilterSpec {
	r := filters.Normalize(c.QueryParam("start"), c.QueryParam("end"))
	return filters.Build(c.QueryParam("q"), r)
}

// asJS menserialisasi nilai ke JSON string yang aman disisipkan verbatim
// dalam konteks <script>.
func asJS(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}

// Dashboard menangani GET /dashboard: listing terfilter plus tiga agregasi
// chart. Kegagalan satu agregasi hanya mengosongkan chart tersebut;
// kegagalan listing utama menggagalkan seluruh request.
func (dc *DashboardController) Dashboard(c echo.Context) error {
	spec := buildSpec(c)

	patients, err := dc.PasienService.List(spec)
	if err != nil {
		return err
	}
	total, err := dc.PasienService.CountAll()
	if err != nil {
		return err
	}

	days := dc.Service.CountByDayOrEmpty(spec)
	visitsLabels := make([]string, 0, len(days))
	visitsValues := make([]int, 0, len(days))
	for _, d := range days {
		visitsLabels = append(visitsLabels, d.Tanggal.Format(filters.FormDateLayout))
		visitsValues = append(visitsValues, d.Count)
	}

	diag := dc.Service.TopCategoriesOrEmpty(spec, "diagnosis", services.TopN)
	diagLabels := make([]string, 0, len(diag))
	diagValues := make([]int, 0, len(diag))
	for _, cc := range diag {
		diagLabels = append(diagLabels, cc.Label)
		diagValues = append(diagValues, cc.Count)
	}

	tind := dc.Service.TopCategoriesOrEmpty(spec, "tindakan", services.TopN)
	tindLabels := make([]string, 0, len(tind))
	tindValues := make([]int, 0, len(tind))
	for _, cc := range tind {
		tindLabels = append(tindLabels, cc.Label)
		tindValues = append(tindValues, cc.Count)
	}

	start, end := "", ""
	if spec.Range.Start != nil {
		start = spec.Range.Start.Format(filters.FormDateLayout)
	}
	if spec.Range.End != nil {
		end = spec.Range.End.Format(filters.FormDateLayout)
	}

	return c.Render(http.StatusOK, "dashboard.html", map[string]interface{}{
		"User":         middlewares.CurrentUser(c),
		"Patients":     patients,
		"Total":        total,
		"Q":            spec.Nama,
		"Start":        start,
		"End":          end,
		"VisitsLabels": asJS(visitsLabels),
		"VisitsValues": asJS(visitsValues),
		"DiagLabels":   asJS(diagLabels),
		"DiagValues":   asJS(diagValues),
		"TindLabels":   asJS(tindLabels),
		"TindValues":   asJS(tindValues),
	})
}

// Export menangani GET /export.xlsx dengan aturan filter yang sama persis
// dengan dashboard.
func (dc *DashboardController) Export(c echo.Context) error {
	content, err := dc.ExportService.Export(buildSpec(c))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=laporan_pasien.xlsx`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
