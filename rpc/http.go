package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/farmpool/poold/logging"
	"github.com/farmpool/poold/types"
)

const maxRequestSize = 1 << 20

var httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "pool",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "Duration of farmer requests by route.",
	Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
}, []string{"route"})

var errMalformedRequest = errors.New("malformed request")

// FarmerHandler serves the pool protocol endpoints farmers talk to.
type FarmerHandler struct {
	pool   Pool
	logger *zap.Logger
	router *httprouter.Router
}

func NewFarmerHandler(p Pool, logger *zap.Logger) *FarmerHandler {
	h := &FarmerHandler{pool: p, logger: logger, router: httprouter.New()}
	h.router.GET("/pool_info", h.handle("pool_info", h.poolInfo))
	h.router.GET("/farmer", h.handle("get_farmer", h.getFarmer))
	h.router.POST("/farmer", h.handle("post_farmer", h.postFarmer))
	h.router.PUT("/farmer", h.handle("put_farmer", h.putFarmer))
	h.router.POST("/partial", h.handle("partial", h.postPartial))
	return h
}

func (h *FarmerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type handlerFunc func(ctx context.Context, r *http.Request) (any, error)

// handle runs fn with a request scoped logger and writes its result or error as JSON.
func (h *FarmerHandler) handle(route string, fn handlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		timer := prometheus.NewTimer(httpRequests.WithLabelValues(route))
		defer timer.ObserveDuration()

		logger := h.logger.Named(route).With(zap.Stringer("request_id", uuid.New()))
		ctx := logging.NewContext(r.Context(), logger)
		logger.Debug("new request", zap.String("from", r.RemoteAddr))

		resp, err := fn(ctx, r)
		switch {
		case errors.Is(err, errMalformedRequest):
			logger.Debug("malformed request", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, &types.ErrorResponse{
				ErrorCode:    types.RequestFailed,
				ErrorMessage: err.Error(),
			})
		case err != nil:
			perr := types.AsPoolError(err)
			if perr.Code == types.ServerException {
				logger.Error("request failed", zap.Error(err))
			} else {
				logger.Info("request rejected", zap.Stringer("code", perr.Code), zap.String("message", perr.Message))
			}
			// the pool protocol reports rejections in the body
			writeJSON(w, http.StatusOK, &types.ErrorResponse{ErrorCode: perr.Code, ErrorMessage: perr.Message})
		default:
			writeJSON(w, http.StatusOK, resp)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestSize))
	if err := dec.Decode(v); err != nil {
		return errors.Join(errMalformedRequest, err)
	}
	return nil
}

func (h *FarmerHandler) poolInfo(context.Context, *http.Request) (any, error) {
	return h.pool.Info(), nil
}

func (h *FarmerHandler) getFarmer(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	var req types.GetFarmerRequest
	if err := req.LauncherID.UnmarshalText([]byte(query.Get("launcher_id"))); err != nil {
		return nil, errors.Join(errMalformedRequest, err)
	}
	token, err := strconv.ParseUint(query.Get("authentication_token"), 10, 64)
	if err != nil {
		return nil, errors.Join(errMalformedRequest, err)
	}
	req.AuthenticationToken = token
	if err := req.Signature.UnmarshalText([]byte(query.Get("signature"))); err != nil {
		return nil, errors.Join(errMalformedRequest, err)
	}
	return h.pool.GetFarmer(ctx, &req)
}

func (h *FarmerHandler) postFarmer(ctx context.Context, r *http.Request) (any, error) {
	var req types.PostFarmerRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return h.pool.AddFarmer(ctx, &req)
}

func (h *FarmerHandler) putFarmer(ctx context.Context, r *http.Request) (any, error) {
	var req types.PutFarmerRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return h.pool.UpdateFarmer(ctx, &req)
}

func (h *FarmerHandler) postPartial(ctx context.Context, r *http.Request) (any, error) {
	var req types.PostPartialRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	difficulty, err := h.pool.SubmitPartial(ctx, &req)
	if err != nil {
		return nil, err
	}
	return &types.PostPartialResponse{NewDifficulty: difficulty}, nil
}
