// main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/puertodata/contenedores/backend/config"
	"github.com/puertodata/contenedores/backend/database"
	"github.com/puertodata/contenedores/backend/handlers"
	"github.com/puertodata/contenedores/backend/models"
	"github.com/puertodata/contenedores/backend/services"
)

func main() {
	log.Println("Starting Container Movements Dashboard Backend...")

	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, DB name: %s, snapshot TTL: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName, config.AppConfig.Cache.SnapshotTTL)

	cache := services.NewSnapshotCache(func() (*models.Snapshot, error) {
		return database.LoadSnapshot(config.AppConfig.Database)
	}, config.AppConfig.Cache.SnapshotTTL)

	dashboard := handlers.NewDashboardHandler(cache)

	// --- Setup HTTP routes ---
	http.HandleFunc("/", handlers.DashboardPageHandler)
	http.HandleFunc("/api/health", dashboard.HealthHandler)
	http.HandleFunc("/api/dashboard/options", dashboard.GetOptionsHandler)
	http.HandleFunc("/api/dashboard/report", dashboard.GetReportHandler)
	http.HandleFunc("/api/dashboard/export", dashboard.ExportCSVHandler)

	// Admin route for forcing a reload outside the cache TTL
	http.HandleFunc("/api/admin/refresh-data", dashboard.RefreshDataHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
