package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/klinikita/pasien-admin/internal/common/middlewares"
	dashboardControllers "github.com/klinikita/pasien-admin/internal/dashboard/controllers"
	dashboardServices "github.com/klinikita/pasien-admin/internal/dashboard/services"
	manajemenControllers "github.com/klinikita/pasien-admin/internal/manajemen/controllers"
	"github.com/klinikita/pasien-admin/internal/manajemen/models"
	manajemenServices "github.com/klinikita/pasien-admin/internal/manajemen/services"
	pasienControllers "github.com/klinikita/pasien-admin/internal/pasien/controllers"
	pasienServices "github.com/klinikita/pasien-admin/internal/pasien/services"
)

// Init menginisialisasi seluruh service, controller, dan route aplikasi.
func Init(e *echo.Echo, db *sql.DB) *manajemenServices.UserService {
	// Service
	userService := manajemenServices.NewUserService(db)
	pasienService := pasienServices.NewPasienService(db)
	importService := pasienServices.NewImportService(db)
	exportService := pasienServices.NewExportService(pasienService)
	dashboardService := dashboardServices.NewDashboardService(db)

	// Controller
	userController := manajemenControllers.NewUserController(userService)
	pasienController := pasienControllers.NewPasienController(pasienService, importService, userService)
	dashboardController := dashboardControllers.NewDashboardController(dashboardService, pasienService, exportService)

	auth := middlewares.Authenticate(userService)
	dokterOnly := middlewares.RequireRole(models.RoleDokter)
	adminOnly := middlewares.RequireRole(models.RoleAdmin)

	// Publik
	e.GET("/", userController.Root)
	e.GET("/login", userController.LoginForm)
	e.POST("/login", userController.Login)
	e.GET("/logout", userController.Logout)

	// Dashboard + export: cukup terautentikasi
	e.GET("/dashboard", dashboardController.Dashboard, auth)
	e.GET("/export.xlsx", dashboardController.Export, auth)
	e.POST("/import", pasienController.Import, auth)

	// Data pasien: baca untuk semua user login, mutasi khusus dokter
	patients := e.Group("/patients", auth)
	patients.GET("", pasienController.List)
	patients.GET("/new", pasienController.NewForm, dokterOnly)
	patients.POST("/new", pasienController.Create, dokterOnly)
	patients.GET("/:id/edit", pasienController.EditForm, dokterOnly)
	patients.POST("/:id/edit", pasienController.Update, dokterOnly)
	patients.POST("/:id/delete", pasienController.Delete, dokterOnly)

	// Akun dokter: khusus admin
	users := e.Group("/users", auth, adminOnly)
	users.GET("", userController.ListDokter)
	users.GET("/new", userController.NewDokterForm)
	users.POST("/new", userController.CreateDokter)

	return userService
}
