package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rateshop/internal/engine"
	"rateshop/internal/metrics"
)

type Server struct {
	eng      *engine.Engine
	counters *metrics.Counters
	log      *zap.Logger
}

// New wires the rate-shop engine behind the HTTP surface. counters and log
// may be nil.
func New(eng *engine.Engine, counters *metrics.Counters, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{eng: eng, counters: counters, log: log}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/rateshop", s.handleRateShop)
	r.Get("/serviceability", s.handleServiceability)
	r.Get("/metrics", s.handleMetrics)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Rate shop
type preferencesRequest struct {
	WeightCost        *float64 `json:"weight_cost"`
	WeightSLA         *float64 `json:"weight_sla"`
	PreferredCarriers []string `json:"preferred_carriers"`
}

type rateShopRequest struct {
	OriginPincode      string             `json:"origin_pincode"`
	DestinationPincode string             `json:"destination_pincode"`
	WeightGrams        int64              `json:"weight_grams"`
	LengthCm           float64            `json:"length_cm"`
	WidthCm            float64            `json:"width_cm"`
	HeightCm           float64            `json:"height_cm"`
	WarehouseID        *int64             `json:"warehouse_id"`
	Preferences        preferencesRequest `json:"preferences"`
}

type decisionResponse struct {
	CarrierID   int64           `json:"carrier_id"`
	CarrierName string          `json:"carrier_name"`
	RateID      int64           `json:"rate_id"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
	ETADays     int             `json:"eta_days"`
	Score       float64         `json:"score"`
}

func (s *Server) handleRateShop(w http.ResponseWriter, r *http.Request) {
	var req rateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if req.WeightGrams < 0 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "weight_grams must be non-negative")
		return
	}

	result, err := s.eng.Shop(r.Context(), engine.Request{
		OriginPincode:      req.OriginPincode,
		DestinationPincode: req.DestinationPincode,
		WeightGrams:        req.WeightGrams,
		LengthCm:           req.LengthCm,
		WidthCm:            req.WidthCm,
		HeightCm:           req.HeightCm,
		WarehouseID:        req.WarehouseID,
		Preferences: engine.Preferences{
			WeightCost:        req.Preferences.WeightCost,
			WeightSLA:         req.Preferences.WeightSLA,
			PreferredCarriers: req.Preferences.PreferredCarriers,
		},
	})
	if err != nil {
		s.log.Error("rate shop failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "lookup_error", "rate shop failed")
		return
	}

	switch result.Status {
	case engine.StatusNotServiceable:
		writeErrorJSON(w, http.StatusUnprocessableEntity, "not_serviceable", "route is not serviceable")
	case engine.StatusNoCandidates:
		writeErrorJSON(w, http.StatusUnprocessableEntity, "no_rate_candidates", "no rate candidates available")
	default:
		d := result.Decision
		writeJSON(w, http.StatusOK, decisionResponse{
			CarrierID:   d.CarrierID,
			CarrierName: d.CarrierName,
			RateID:      d.RateID,
			ServiceName: d.ServiceName,
			Price:       d.Price,
			ETADays:     d.ETADays,
			Score:       d.Score,
		})
	}
}

// Serviceability
type zoneResponse struct {
	Pincode string `json:"pincode"`
	Zone    string `json:"zone,omitempty"`
	ODA     bool   `json:"oda"`
}

type coverageResponse struct {
	WarehouseID    int64            `json:"warehouse_id"`
	Pincode        string           `json:"pincode"`
	TATDays        *int             `json:"tat_days,omitempty"`
	IsODA          bool             `json:"is_oda"`
	ODAFee         *decimal.Decimal `json:"oda_fee,omitempty"`
	MinWeightGrams *int64           `json:"min_weight_grams,omitempty"`
	MaxWeightGrams *int64           `json:"max_weight_grams,omitempty"`
}

type serviceabilityResponse struct {
	Serviceable     bool              `json:"serviceable"`
	OriginZone      *zoneResponse     `json:"origin_zone,omitempty"`
	DestinationZone *zoneResponse     `json:"destination_zone,omitempty"`
	Coverage        *coverageResponse `json:"coverage,omitempty"`
}

func (s *Server) handleServiceability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")

	var warehouseID *int64
	if raw := strings.TrimSpace(q.Get("warehouse_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "warehouse_id must be a positive integer")
			return
		}
		warehouseID = &id
	}

	res, err := s.eng.CheckServiceability(r.Context(), origin, destination, warehouseID)
	if err != nil {
		s.log.Error("serviceability check failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "lookup_error", "serviceability check failed")
		return
	}
	writeJSON(w, http.StatusOK, toServiceabilityResponse(res))
}

func toServiceabilityResponse(res engine.ServiceabilityResult) serviceabilityResponse {
	out := serviceabilityResponse{Serviceable: res.Serviceable}
	if z := res.OriginZone; z != nil {
		out.OriginZone = &zoneResponse{Pincode: z.Pincode, Zone: z.Zone, ODA: z.ODA}
	}
	if z := res.DestinationZone; z != nil {
		out.DestinationZone = &zoneResponse{Pincode: z.Pincode, Zone: z.Zone, ODA: z.ODA}
	}
	if c := res.Coverage; c != nil {
		out.Coverage = &coverageResponse{
			WarehouseID:    c.WarehouseID,
			Pincode:        c.Pincode,
			TATDays:        c.TATDays,
			IsODA:          c.IsODA,
			ODAFee:         c.ODAFee,
			MinWeightGrams: c.MinWeightGrams,
			MaxWeightGrams: c.MaxWeightGrams,
		}
	}
	return out
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot := map[string]int64{}
	if s.counters != nil {
		snapshot = s.counters.Snapshot()
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
