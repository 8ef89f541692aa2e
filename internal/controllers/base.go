package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/drstein77/goldcatalog/internal/goldprice"
	"github.com/drstein77/goldcatalog/internal/models"
	"github.com/drstein77/goldcatalog/internal/pricing"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Storage interface for catalog reads
type Storage interface {
	GetAllProducts(context.Context) ([]models.Product, error)
}

// Pricer interface for the gold price lookup
type Pricer interface {
	PricePerGram(context.Context) goldprice.Quote
}

// Log interface for logging
type Log interface {
	Info(string, ...zapcore.Field)
	Warn(string, ...zapcore.Field)
	Error(string, ...zapcore.Field)
}

// BaseController struct for handling requests
type BaseController struct {
	ctx     context.Context
	storage Storage
	pricer  Pricer
	log     Log
}

// NewBaseController creates a new BaseController instance
func NewBaseController(ctx context.Context, storage Storage, pricer Pricer, log Log) *BaseController {
	instance := &BaseController{
		ctx:     ctx,
		storage: storage,
		pricer:  pricer,
		log:     log,
	}

	return instance
}

// Route sets up the routes for the BaseController
func (h *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/api/products", h.getProducts)
	r.Get("/", h.liveness)

	return r
}

// getProducts serves the catalog enriched with the current gold price. The
// price lookup cannot fail (the adapter falls back internally), so the only
// per-request failure left is encoding.
func (h *BaseController) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.storage.GetAllProducts(r.Context())
	if err != nil {
		h.log.Error("Failed to read catalog", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	quote := h.pricer.PricePerGram(r.Context())
	if quote.Fallback {
		h.log.Warn("Serving catalog with fallback gold price", zap.String("reason", quote.Reason))
	}

	enriched := pricing.Enrich(products, quote.PerGram)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(enriched); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

// liveness responds to the root route with a plain-text status line.
func (h *BaseController) liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Product API is running"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
