package router

import (
	"fmt"

	"employee-enrollment/internal/config"
	"employee-enrollment/internal/handler"
	"employee-enrollment/internal/middleware"
	"employee-enrollment/internal/service"
	"employee-enrollment/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, svc *service.Service) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.AuditMiddleware(db, cfg.Backup.EncryptionKey))

	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	dashboard := handler.NewDashboardHandler(svc)
	r.GET("/", dashboard.Home)
	r.GET("/refresh", dashboard.Home)
	r.GET("/download", dashboard.Download)

	// ====== API ======
	api := r.Group("/api")

	employeeHandler := handler.NewEmployeeHandler(svc)
	api.POST("/employees", employeeHandler.CreateEmployee)
	api.GET("/employees", employeeHandler.ListEmployees)
	api.GET("/categories", employeeHandler.ListCategories)
	api.GET("/salary", employeeHandler.ResolveSalary)

	backupHandler := handler.NewBackupHandler(db, svc, cfg.Backup.Dir, cfg.Backup.EncryptionKey)
	api.POST("/backups", backupHandler.CreateBackup)
	api.GET("/backups", backupHandler.ListBackups)
	api.GET("/backups/:id/download", backupHandler.DownloadBackup)

	logHandler := handler.NewLogHandler(db, cfg.Backup.EncryptionKey)
	api.GET("/logs", logHandler.ListLogs)

	return r, nil
}
