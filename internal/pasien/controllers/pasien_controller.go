package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/internal/common/apperr"
	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	manajemenModels "github.com/klinikita/pasien-admin/internal/manajemen/models"
	manajemenServices "github.com/klinikita/pasien-admin/internal/manajemen/services"
	"github.com/klinikita/pasien-admin/internal/pasien/filters"
	"github.com/klinikita/pasien-admin/internal/pasien/models"
	"github.com/klinikita/pasien-admin/internal/pasien/services"
)

type PasienController struct {
	Service       *services.PasienService
	ImportService *services.ImportService
	UserService   *manajemenServices.UserService
}

func NewPasienController(svc *services.PasienService, importSvc *services.ImportService, userSvc *manajemenServices.UserService) *PasienController {
	return &PasienController{Service: svc, ImportService: importSvc, UserService: userSvc}
}

// doctorChoices mengambil daftar username dokter untuk dropdown form.
// User dokter yang sedang login selalu ikut walau belum ada di daftar.
func (pc *PasienController) doctorChoices(c echo.Context) []string {
	doctors, err := pc.UserService.DoctorUsernames()
	if err != nil {
		doctors = nil
	}
	user := middlewares.CurrentUser(c)
	if user != nil && user.Role == manajemenModels.RoleDokter {
		found := false
		for _, d := range doctors {
			if d == user.Username {
				found = true
				break
			}
		}
		if !found {
			doctors = append([]string{user.Username}, doctors...)
		}
	}
	return doctors
}

// List menangani GET /patients. Menerima filter q/start/end yang sama
// dengan dashboard; kegagalan listing fatal untuk request ini.
func (pc *PasienController) List(c echo.Context) error {
	spec := filters.Build(c.QueryParam("q"), filters.Normalize(c.QueryParam("start"), c.QueryParam("end")))
	patients, err := pc.Service.List(spec)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "patients_list.html", map[string]interface{}{
		"User":     middlewares.CurrentUser(c),
		"Patients": patients,
	})
}

func (pc *PasienController) renderForm(c echo.Context, patient *models.Pasien, form, errs map[string]string, status int) error {
	return c.Render(status, "patient_form.html", map[string]interface{}{
		"User":    middlewares.CurrentUser(c),
		"Patient": patient,
		"Form":    form,
		"Errors":  errs,
		"Doctors": pc.doctorChoices(c),
	})
}

// NewForm menangani GET /patients/new (khusus dokter).
func (pc *PasienController) NewForm(c echo.Context) error {
	return pc.renderForm(c, nil, map[string]string{}, map[string]string{}, http.StatusOK)
}

// readForm memangkas seluruh field form pasien.
func readForm(c echo.Context) map[string]string {
	form := map[string]string{}
	for _, field := range []string{"nama", "tanggal_lahir", "tanggal_kunjungan", "diagnosis", "tindakan", "dokter"} {
		form[field] = strings.TrimSpace(c.FormValue(field))
	}
	return form
}

// validateForm menerapkan kebijakan form: semua field wajib, tanggal format
// ketat YYYY-MM-DD, dokter harus salah satu username role dokter.
func validateForm(form map[string]string, doctors []string) (map[string]string, *time.Time, *time.Time) {
	errs := map[string]string{}

	if form["nama"] == "" {
		errs["nama"] = "Nama wajib diisi."
	}
	if form["diagnosis"] == "" {
		errs["diagnosis"] = "Diagnosis wajib diisi."
	}
	if form["tindakan"] == "" {
		errs["tindakan"] = "Tindakan wajib diisi."
	}
	if form["dokter"] == "" {
		errs["dokter"] = "Dokter wajib dipilih."
	} else {
		known := false
		for _, d := range doctors {
			if d == form["dokter"] {
				known = true
				break
			}
		}
		if !known {
			errs["dokter"] = "Pilih dokter yang tersedia."
		}
	}

	parseRequired := func(field string) *time.Time {
		if form[field] == "" {
			errs[field] = "Wajib diisi."
			return nil
		}
		t := filters.ParseDate(form[field])
		if t == nil {
			errs[field] = "Format tanggal tidak valid (gunakan YYYY-MM-DD)."
		}
		return t
	}
	lahir := parseRequired("tanggal_lahir")
	kunjungan := parseRequired("tanggal_kunjungan")
	return errs, lahir, kunjungan
}

// Create menangani POST /patients/new (khusus dokter).
func (pc *PasienController) Create(c echo.Context) error {
	form := readForm(c)
	doctors := pc.doctorChoices(c)
	errs, lahir, kunjungan := validateForm(form, doctors)
	if len(errs) > 0 {
		return pc.renderForm(c, nil, form, errs, http.StatusBadRequest)
	}

	diagnosis, tindakan, dokter := form["diagnosis"], form["tindakan"], form["dokter"]
	p := models.Pasien{
		Nama:             form["nama"],
		TanggalLahir:     lahir,
		TanggalKunjungan: *kunjungan,
		Diagnosis:        &diagnosis,
		Tindakan:         &tindakan,
		Dokter:           &dokter,
	}
	if err := pc.Service.Create(&p); err != nil {
		errs["__all__"] = "Gagal menyimpan data pasien."
		return pc.renderForm(c, nil, form, errs, http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/patients")
}

// EditForm menangani GET /patients/:id/edit (khusus dokter).
func (pc *PasienController) EditForm(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.ErrNotFound
	}
	p, err := pc.Service.Get(id)
	if err != nil {
		return err
	}
	return pc.renderForm(c, p, map[string]string{}, map[string]string{}, http.StatusOK)
}

// Update menangani POST /patients/:id/edit (khusus dokter).
func (pc *PasienController) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.ErrNotFound
	}
	p, err := pc.Service.Get(id)
	if err != nil {
		return err
	}

	form := readForm(c)
	doctors := pc.doctorChoices(c)
	errs, lahir, kunjungan := validateForm(form, doctors)
	if len(errs) > 0 {
		return pc.renderForm(c, p, form, errs, http.StatusBadRequest)
	}

	diagnosis, tindakan, dokter := form["diagnosis"], form["tindakan"], form["dokter"]
	p.Nama = form["nama"]
	p.TanggalLahir = lahir
	p.TanggalKunjungan = *kunjungan
	p.Diagnosis = &diagnosis
	p.Tindakan = &tindakan
	p.Dokter = &dokter

	if err := pc.Service.Update(p); err != nil {
		errs["__all__"] = "Gagal memperbarui data pasien."
		return pc.renderForm(c, p, form, errs, http.StatusInternalServerError)
	}
	return c.Redirect(http.StatusFound, "/patients")
}

// Delete menangani POST /patients/:id/delete (khusus dokter). Penghapusan
// langsung dan permanen.
func (pc *PasienController) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.ErrNotFound
	}
	if err := pc.Service.Delete(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/patients")
}

// Import menangani POST /import: body JSON berupa array atau objek tunggal.
// Objek tunggal diperlakukan sebagai batch satu item.
func (pc *PasienController) Import(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Gagal membaca body request.")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		var single json.RawMessage
		if err := json.Unmarshal(body, &single); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Body harus berupa JSON array atau objek.")
		}
		items = []json.RawMessage{single}
	}

	report, err := pc.ImportService.Import(items)
	if err != nil {
		return err
	}

	status := http.StatusMultiStatus
	if report.FullSuccess() {
		status = http.StatusOK
	}
	return c.JSON(status, map[string]interface{}{
		"status":   "ok",
		"batch_id": report.BatchID,
		"created":  report.Created,
		"failed":   report.Failed(),
		"errors":   report.Errors,
	})
}
