package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fname-registry/internal/transfers/models"
	"fname-registry/internal/transfers/signature"
	dErrors "fname-registry/pkg/domain-errors"
	"fname-registry/pkg/platform/sentinel"
	"fname-registry/pkg/requestcontext"
)

// Create validates req and appends it to the log, co-signed by the registry.
//
// Rejections are *models.ValidationError. A request that repeats the current
// state of the name returns the existing record with Duplicate set and writes
// nothing. Storage failures are internal_error domain errors.
func (s *Service) Create(ctx context.Context, req models.TransferRequest) (*models.CreateResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveCreateLatency(time.Since(start)) }()

	ctx, span := s.tracer.Start(ctx, "transfers.Create", trace.WithAttributes(
		attribute.String("fname.username", req.Username),
		attribute.Int64("fname.from", int64(req.From)),
		attribute.Int64("fname.to", int64(req.To)),
		attribute.Int64("fname.user_fid", int64(req.UserFid)),
	))
	defer span.End()

	var result *models.CreateResult
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.validateAndInsert(ctx, req)
		return err
	})
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.metrics.IncrementRejected(string(verr.Code))
			span.SetStatus(codes.Error, string(verr.Code))
			s.logger.InfoContext(ctx, "transfer rejected",
				"request_id", requestcontext.RequestID(ctx),
				"username", req.Username,
				"code", verr.Code,
			)
			return nil, verr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "transfer not recorded")
		s.logger.ErrorContext(ctx, "failed to record transfer",
			"request_id", requestcontext.RequestID(ctx),
			"username", req.Username,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transfer")
	}

	span.SetAttributes(
		attribute.Int64("fname.transfer_id", result.Transfer.ID),
		attribute.Bool("fname.duplicate", result.Duplicate),
	)
	if result.Duplicate {
		s.metrics.IncrementDuplicate()
		return result, nil
	}

	s.metrics.IncrementAccepted(transferKind(result.Transfer))
	s.logger.InfoContext(ctx, "transfer recorded",
		"request_id", requestcontext.RequestID(ctx),
		"transfer_id", result.Transfer.ID,
		"username", result.Transfer.Username,
		"from", result.Transfer.From,
		"to", result.Transfer.To,
	)
	s.publish(ctx, result.Transfer)
	return result, nil
}

func (s *Service) validateAndInsert(ctx context.Context, req models.TransferRequest) (*models.CreateResult, error) {
	verifier, ok := s.authority.AuthorizedVerifier(ctx, req.UserFid)
	if !ok {
		return nil, models.Reject(models.CodeUnauthorized)
	}

	att := signature.Attestation{Username: req.Username, Timestamp: req.Timestamp, Owner: req.Owner}
	if !s.authority.Verify(att, req.UserSignature, verifier) {
		return nil, models.Reject(models.CodeInvalidSignature)
	}

	if err := s.usernames.Validate(req.Username); err != nil {
		return nil, models.Reject(models.CodeInvalidUsername)
	}

	existing, err := s.store.Latest(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		existing = nil
	}

	existingName, err := s.store.CurrentUsername(ctx, req.To)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, err
		}
		existingName = ""
	}

	if existingName != "" {
		// Only the owner is compared: a resubmission with a different
		// timestamp or signature still counts as the same transfer.
		if existing != nil && existingName == req.Username && existing.Owner == req.Owner {
			return &models.CreateResult{Transfer: existing, Duplicate: true}, nil
		}
		return nil, models.Reject(models.CodeTooManyNames)
	}

	now := requestcontext.Now(ctx)
	if req.Timestamp > now.Add(TimestampTolerance).Unix() {
		return nil, models.Reject(models.CodeInvalidTimestamp)
	}
	if existing != nil && existing.Timestamp > req.Timestamp {
		return nil, models.Reject(models.CodeInvalidTimestamp)
	}

	switch {
	case req.From == 0:
		if existing != nil && existing.To != 0 {
			return nil, models.Reject(models.CodeUsernameTaken)
		}
	case req.To == 0:
		if existing == nil || existing.To == 0 {
			return nil, models.Reject(models.CodeUsernameNotFound)
		}
	default:
		if existing == nil {
			return nil, models.Reject(models.CodeUsernameNotFound)
		}
	}

	serverSig, err := s.authority.CoSign(att)
	if err != nil {
		return nil, err
	}

	t := &models.Transfer{
		Timestamp:       req.Timestamp,
		Username:        req.Username,
		Owner:           req.Owner,
		From:            req.From,
		To:              req.To,
		UserSignature:   req.UserSignature,
		ServerSignature: serverSig,
	}
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &models.CreateResult{Transfer: t}, nil
}

// publish emits t after commit. Failures are logged and counted; the
// transfer is already durable.
func (s *Service) publish(ctx context.Context, t *models.Transfer) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.PublishTransfer(pubCtx, t); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.WarnContext(ctx, "failed to publish transfer event",
			"request_id", requestcontext.RequestID(ctx),
			"transfer_id", t.ID,
			"error", err,
		)
	}
}

func transferKind(t *models.Transfer) string {
	switch {
	case t.IsMint():
		return "mint"
	case t.IsBurn():
		return "burn"
	default:
		return "transfer"
	}
}
