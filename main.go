package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"employee-enrollment/internal/config"
	"employee-enrollment/internal/database"
	"employee-enrollment/internal/router"
	"employee-enrollment/internal/salary"
	"employee-enrollment/internal/service"
	"employee-enrollment/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// load configuration (config.yaml is optional)
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Backup.Dir); err != nil {
		log.Fatalf("create backup dir: %v", err)
	}
	if cfg.Log.File != "" {
		if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
			log.Fatalf("create log dir: %v", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		w := io.MultiWriter(os.Stdout, f)
		log.SetOutput(w)
		gin.DefaultWriter = w
		gin.DefaultErrorWriter = w
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	records := store.New(cfg.Store.Path, store.WithSheet(cfg.Store.Sheet))
	svc := service.New(records, salary.NewResolver(salary.EntriesFromConfig(cfg.Salary)))

	// setup router
	r, err := router.SetupRouter(cfg, db, svc)
	if err != nil {
		log.Fatalf("setup router: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("dashboard listening on %s (workbook %s)", addr, records.Path())
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
