// Package handler exposes the transfer registry over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"fname-registry/internal/platform/metrics"
	"fname-registry/internal/platform/middleware"
	"fname-registry/internal/transfers/models"
	dErrors "fname-registry/pkg/domain-errors"
	"fname-registry/pkg/platform/httputil"
)

const defaultRequestTimeout = 30 * time.Second

// Service defines the transfer operations served over HTTP.
type Service interface {
	Create(ctx context.Context, req models.TransferRequest) (*models.CreateResult, error)
	Latest(ctx context.Context, username string) (*models.Transfer, error)
	CurrentTransfer(ctx context.Context, fid uint64) (*models.Transfer, error)
	Get(ctx context.Context, id int64) (*models.Transfer, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]*models.Transfer, error)
	Signer() common.Address
}

// Handler handles transfer registry endpoints.
type Handler struct {
	transfers      Service
	logger         *slog.Logger
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

type Option func(*Handler)

// WithRequestTimeout bounds each request's context.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.requestTimeout = d
		}
	}
}

// New creates a new transfers Handler.
func New(transfers Service, logger *slog.Logger, metrics *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		transfers:      transfers,
		logger:         logger,
		metrics:        metrics,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the transfer routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	transferRouter := chi.NewRouter()
	transferRouter.Use(middleware.Recovery(h.logger))
	transferRouter.Use(middleware.RequestID)
	transferRouter.Use(middleware.RequestTime)
	transferRouter.Use(middleware.ClientMetadata)
	transferRouter.Use(middleware.Logger(h.logger))
	transferRouter.Use(middleware.Timeout(h.requestTimeout))
	transferRouter.Use(middleware.ContentTypeJSON)
	transferRouter.Use(middleware.LatencyMiddleware(h.metrics))

	transferRouter.Get("/transfers", h.handleHistory)
	transferRouter.Get("/transfers/current", h.handleCurrent)
	transferRouter.Get("/transfers/{id}", h.handleGetTransfer)
	transferRouter.Post("/transfers", h.handleCreateTransfer)
	transferRouter.Get("/signer", h.handleSigner)

	r.Mount("/", transferRouter)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	filter, err := parseHistoryFilter(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid history query",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	transfers, err := h.transfers.History(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read transfer history",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewTransfersEnvelope(transfers))
}

// handleCurrent resolves the current transfer by name or, failing that, by fid.
func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	query := r.URL.Query()

	var (
		transfer *models.Transfer
		err      error
	)
	if name := query.Get("name"); name != "" {
		transfer, err = h.transfers.Latest(ctx, name)
	} else {
		var fid uint64
		fid, err = parseUint(query.Get("fid"), "fid")
		if err == nil && fid == 0 {
			err = dErrors.New(dErrors.CodeBadRequest, "name or fid is required")
		}
		if err == nil {
			transfer, err = h.transfers.CurrentTransfer(ctx, fid)
		}
	}
	if err != nil {
		h.logLookupError(ctx, requestID, "failed to resolve current transfer", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.TransferEnvelope{Transfer: models.NewTransferResponse(transfer)})
}

func (h *Handler) handleGetTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.WarnContext(ctx, "invalid transfer id",
			"request_id", requestID,
			"id", chi.URLParam(r, "id"),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer"))
		return
	}

	transfer, err := h.transfers.Get(ctx, id)
	if err != nil {
		h.logLookupError(ctx, requestID, "failed to get transfer", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.TransferEnvelope{Transfer: models.NewTransferResponse(transfer)})
}

func (h *Handler) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateTransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.transfers.Create(ctx, req.TransferRequest())
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.logger.InfoContext(ctx, "transfer rejected",
				"request_id", requestID,
				"username", req.Name,
				"code", verr.Code,
			)
			httputil.WriteErrorCode(w, http.StatusBadRequest, string(verr.Code), verr.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to create transfer",
			"request_id", requestID,
			"username", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.TransferEnvelope{Transfer: models.NewTransferResponse(result.Transfer)})
}

func (h *Handler) handleSigner(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.SignerResponse{Signer: h.transfers.Signer().Hex()})
}

func (h *Handler) logLookupError(ctx context.Context, requestID, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
		h.logger.DebugContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
}

// parseHistoryFilter reads the history query. Zero values mean no filter.
func parseHistoryFilter(r *http.Request) (models.HistoryFilter, error) {
	query := r.URL.Query()
	var filter models.HistoryFilter

	fromTs, err := parseInt(query.Get("from_ts"), "from_ts")
	if err != nil {
		return filter, err
	}
	if fromTs != 0 {
		filter.FromTs = &fromTs
	}

	fromID, err := parseInt(query.Get("from_id"), "from_id")
	if err != nil {
		return filter, err
	}
	if fromID != 0 {
		filter.FromID = &fromID
	}

	fid, err := parseUint(query.Get("fid"), "fid")
	if err != nil {
		return filter, err
	}
	if fid != 0 {
		filter.Fid = &fid
	}

	filter.Name = query.Get("name")
	return filter, nil
}

func parseInt(raw, field string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, field+" must be a non-negative integer")
	}
	return v, nil
}

func parseUint(raw, field string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, field+" must be a non-negative integer")
	}
	return v, nil
}
