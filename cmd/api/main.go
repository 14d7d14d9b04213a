package main

import (
	"fmt"
	"net/http"

	"github.com/diverse-infotech/attendance-insight-go/internal/config"
	appHTTP "github.com/diverse-infotech/attendance-insight-go/internal/handler/http"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/mailer"
	"github.com/diverse-infotech/attendance-insight-go/internal/repository/memory"
	datasetService "github.com/diverse-infotech/attendance-insight-go/internal/service/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/service/export"
	reportService "github.com/diverse-infotech/attendance-insight-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	datasetRepo := memory.NewDatasetRepository()

	exporter := export.NewExporter()
	summaryMailer := mailer.New(cfg.Mail.FromName, cfg.Mail.FromAddress)

	datasetSvc := datasetService.NewDatasetService(datasetRepo, cfg.Pipeline)
	reportSvc := reportService.NewReportService(datasetRepo, exporter, summaryMailer, cfg.Report)

	datasetHandler := appHTTP.NewDatasetHandler(datasetSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg.App, datasetHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
