package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-spectra-pipeline/docs"
	"go-spectra-pipeline/internal/api/handler"
	"go-spectra-pipeline/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/batches", handler.CreateBatch)
	r.GET("/api/v1/batches", handler.ListBatches)
	r.GET("/api/v1/batches/*/results", handler.GetBatchResults)
	r.GET("/api/v1/batches/*/logs", handler.GetBatchLogs)
	r.GET("/api/v1/batches/*", handler.GetBatch)

	r.Handle("/swagger/", httpSwagger.WrapHandler)
}
