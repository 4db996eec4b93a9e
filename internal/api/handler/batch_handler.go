package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-spectra-pipeline/internal/config"
	"go-spectra-pipeline/internal/model"
	"go-spectra-pipeline/internal/store"
	"go-spectra-pipeline/internal/synth"
)

const batchPrefix = "/api/v1/batches/"

// batchID extracts the batch ID from a path like /api/v1/batches/{id}/suffix.
func batchID(path, suffix string) (string, bool) {
	if !strings.HasPrefix(path, batchPrefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	id := path[len(batchPrefix) : len(path)-len(suffix)]
	return id, id != ""
}

// CreateBatch creates and starts a new synthesis batch
// @Summary Create a new batch
// @Description Validate a batch specification and start synthesizing spectra asynchronously
// @Tags batches
// @Accept json
// @Produce json
// @Param batch body model.BatchSpec true "Batch specification"
// @Success 200 {object} map[string]interface{} "Batch created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid batch specification"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batches [post]
func CreateBatch(w http.ResponseWriter, r *http.Request) {
	var spec model.BatchSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if err := config.Validate(&spec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.New().String()
	if err := store.SaveBatch(id, spec); err != nil {
		http.Error(w, "Failed to save batch", http.StatusInternalServerError)
		return
	}

	go func() {
		if err := synth.ExecuteBatch(context.Background(), id, &spec, ""); err != nil {
			store.SaveBatchLog(id, "batch", "error", err.Error())
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Batch created successfully!",
		"batchID":   id,
		"status":    model.BatchPending,
		"createdAt": time.Now().UTC(),
	})
}

// ListBatches retrieves all batches
// @Summary List all batches
// @Description Get a list of all synthesis batches with their current status
// @Tags batches
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of batches"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batches [get]
func ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := store.ListBatches()
	if err != nil {
		http.Error(w, "Failed to fetch batches", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batches)
}

// GetBatch retrieves a specific batch
// @Summary Get batch
// @Description Retrieve the specification and status of a specific batch
// @Tags batches
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Batch details"
// @Failure 400 {object} map[string]interface{} "Invalid batch ID"
// @Failure 404 {object} map[string]interface{} "Batch not found"
// @Router /batches/{id} [get]
func GetBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := batchID(r.URL.Path, "")
	if !ok {
		http.Error(w, "Batch ID is required", http.StatusBadRequest)
		return
	}

	batch, err := store.GetBatch(id)
	if err != nil {
		http.Error(w, "Batch not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch)
}

// GetBatchResults retrieves per-set results for a batch
// @Summary Get batch results
// @Description Retrieve the per-parameter-set outcomes of a batch in submission order
// @Tags batches
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Batch results"
// @Failure 400 {object} map[string]interface{} "Invalid batch ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batches/{id}/results [get]
func GetBatchResults(w http.ResponseWriter, r *http.Request) {
	id, ok := batchID(r.URL.Path, "/results")
	if !ok {
		http.Error(w, "Batch ID is required", http.StatusBadRequest)
		return
	}

	results, err := store.GetBatchResults(id)
	if err != nil {
		http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"batch_id": id,
		"results":  results,
		"count":    len(results),
	})
}

// GetBatchLogs retrieves the persisted log lines for a batch
// @Summary Get batch logs
// @Description Retrieve batch-level log lines in insertion order
// @Tags batches
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{} "Batch logs"
// @Failure 400 {object} map[string]interface{} "Invalid batch ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batches/{id}/logs [get]
func GetBatchLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := batchID(r.URL.Path, "/logs")
	if !ok {
		http.Error(w, "Batch ID is required", http.StatusBadRequest)
		return
	}

	logs, err := store.GetBatchLogs(id)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"batch_id": id,
		"logs":     logs,
		"count":    len(logs),
	})
}
