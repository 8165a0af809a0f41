// Package service validates and records fname transfers.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"fname-registry/internal/transfers/metrics"
	"fname-registry/internal/transfers/models"
	"fname-registry/internal/transfers/signature"
	dErrors "fname-registry/pkg/domain-errors"
	"fname-registry/pkg/fname"
	"fname-registry/pkg/platform/sentinel"
)

// TimestampTolerance is how far into the future a request timestamp may be.
const TimestampTolerance = 60 * time.Second

const defaultPublishTimeout = 5 * time.Second

// Store is the transfer log. Reads inside RunInTx observe the same transaction.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, t *models.Transfer) (int64, error)
	Latest(ctx context.Context, username string) (*models.Transfer, error)
	CurrentUsername(ctx context.Context, fid uint64) (string, error)
	FindByID(ctx context.Context, id int64) (*models.Transfer, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]*models.Transfer, error)
}

type SignatureAuthority interface {
	Verify(att signature.Attestation, sig []byte, expected common.Address) bool
	CoSign(att signature.Attestation) ([]byte, error)
	AuthorizedVerifier(ctx context.Context, fid uint64) (common.Address, bool)
	Address() common.Address
}

type UsernameValidator interface {
	Validate(name string) error
}

type EventPublisher interface {
	PublishTransfer(ctx context.Context, t *models.Transfer) error
}

// Service orchestrates transfer validation, co-signing and history queries.
type Service struct {
	store          Store
	authority      SignatureAuthority
	usernames      UsernameValidator
	publisher      EventPublisher
	publishTimeout time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher enables post-commit transfer events.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithUsernameValidator(v UsernameValidator) Option {
	return func(s *Service) {
		s.usernames = v
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(store Store, authority SignatureAuthority, opts ...Option) *Service {
	s := &Service{
		store:          store,
		authority:      authority,
		usernames:      fname.Validator{},
		publishTimeout: defaultPublishTimeout,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:         otel.Tracer("fname-registry/transfers"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signer is the address the registry co-signs with.
func (s *Service) Signer() common.Address {
	return s.authority.Address()
}

// Latest returns the most recent transfer of username.
func (s *Service) Latest(ctx context.Context, username string) (*models.Transfer, error) {
	t, err := s.store.Latest(ctx, username)
	if err != nil {
		return nil, translateLookup(err, "transfer not found", "failed to load transfer")
	}
	return t, nil
}

// CurrentTransfer returns the transfer that gave fid its current name.
func (s *Service) CurrentTransfer(ctx context.Context, fid uint64) (*models.Transfer, error) {
	name, err := s.store.CurrentUsername(ctx, fid)
	if err != nil {
		return nil, translateLookup(err, "fid has no username", "failed to load current username")
	}
	return s.Latest(ctx, name)
}

// Get returns the transfer with id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Transfer, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "transfer not found", "failed to load transfer")
	}
	return t, nil
}

// History returns one page of the transfer log.
func (s *Service) History(ctx context.Context, filter models.HistoryFilter) ([]*models.Transfer, error) {
	transfers, err := s.store.History(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load transfer history")
	}
	return transfers, nil
}

func translateLookup(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
