package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,SignatureAuthority,UsernameValidator,EventPublisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fname-registry/internal/transfers/models"
	"fname-registry/internal/transfers/service/mocks"
	dErrors "fname-registry/pkg/domain-errors"
	"fname-registry/pkg/platform/sentinel"
	"fname-registry/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	authority *mocks.MockSignatureAuthority
	usernames *mocks.MockUsernameValidator
	publisher *mocks.MockEventPublisher
	service   *Service
	ctx       context.Context
	verifier  common.Address
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.authority = mocks.NewMockSignatureAuthority(s.ctrl)
	s.usernames = mocks.NewMockUsernameValidator(s.ctrl)
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)
	s.service = New(s.store, s.authority,
		WithUsernameValidator(s.usernames),
		WithPublisher(s.publisher),
	)
	s.ctx = requestcontext.WithTime(context.Background(), time.Unix(1_700_000_000, 0))
	s.verifier = common.HexToAddress("0xaa")

	// RunInTx just runs the callback.
	s.store.EXPECT().RunInTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func (s *ServiceSuite) mintRequest() models.TransferRequest {
	return models.TransferRequest{
		Timestamp:     1_700_000_000,
		Username:      "alice",
		Owner:         common.HexToAddress("0xbb"),
		From:          0,
		To:            1,
		UserSignature: []byte{0x01},
		UserFid:       1,
	}
}

func (s *ServiceSuite) expectAuthorized() {
	s.authority.EXPECT().AuthorizedVerifier(gomock.Any(), uint64(1)).Return(s.verifier, true)
	s.authority.EXPECT().Verify(gomock.Any(), []byte{0x01}, s.verifier).Return(true)
	s.usernames.EXPECT().Validate("alice").Return(nil)
}

func (s *ServiceSuite) TestUnauthorizedStopsBeforeVerification() {
	s.authority.EXPECT().AuthorizedVerifier(gomock.Any(), uint64(1)).Return(common.Address{}, false)

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.assertRejected(err, models.CodeUnauthorized)
}

func (s *ServiceSuite) TestInvalidSignatureStopsBeforeNameCheck() {
	s.authority.EXPECT().AuthorizedVerifier(gomock.Any(), uint64(1)).Return(s.verifier, true)
	s.authority.EXPECT().Verify(gomock.Any(), gomock.Any(), s.verifier).Return(false)

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.assertRejected(err, models.CodeInvalidSignature)
}

func (s *ServiceSuite) TestInvalidUsernameStopsBeforeStorage() {
	s.authority.EXPECT().AuthorizedVerifier(gomock.Any(), uint64(1)).Return(s.verifier, true)
	s.authority.EXPECT().Verify(gomock.Any(), gomock.Any(), s.verifier).Return(true)
	s.usernames.EXPECT().Validate("alice").Return(errors.New("nope"))

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.assertRejected(err, models.CodeInvalidUsername)
}

func (s *ServiceSuite) TestMintIsCoSignedInsertedAndPublished() {
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(1)).Return("", sentinel.ErrNotFound)
	s.authority.EXPECT().CoSign(gomock.Any()).Return([]byte{0x02}, nil)
	s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, t *models.Transfer) (int64, error) {
			s.Equal([]byte{0x02}, t.ServerSignature)
			s.Equal("alice", t.Username)
			return 42, nil
		})
	s.publisher.EXPECT().PublishTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, t *models.Transfer) error {
			s.Equal(int64(42), t.ID)
			return nil
		})

	result, err := s.service.Create(s.ctx, s.mintRequest())
	s.Require().NoError(err)
	s.False(result.Duplicate)
	s.Equal(int64(42), result.Transfer.ID)
}

func (s *ServiceSuite) TestDuplicateIsNotWrittenOrPublished() {
	existing := &models.Transfer{ID: 9, Timestamp: 1_699_999_000, Username: "alice", Owner: common.HexToAddress("0xbb"), To: 1}
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(existing, nil)
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(1)).Return("alice", nil)

	result, err := s.service.Create(s.ctx, s.mintRequest())
	s.Require().NoError(err)
	s.True(result.Duplicate)
	s.Same(existing, result.Transfer)
}

func (s *ServiceSuite) TestSameNameDifferentOwnerIsTooManyNames() {
	existing := &models.Transfer{ID: 9, Username: "alice", Owner: common.HexToAddress("0xcc"), To: 1}
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(existing, nil)
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(1)).Return("alice", nil)

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.assertRejected(err, models.CodeTooManyNames)
}

func (s *ServiceSuite) TestStorageFailuresAreInternal() {
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(nil, errors.New("connection reset"))

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	var verr *models.ValidationError
	s.False(errors.As(err, &verr))
}

func (s *ServiceSuite) TestInsertFailureIsInternalAndNotPublished() {
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(1)).Return("", sentinel.ErrNotFound)
	s.authority.EXPECT().CoSign(gomock.Any()).Return([]byte{0x02}, nil)
	s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("serialization failure"))

	_, err := s.service.Create(s.ctx, s.mintRequest())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestPublishFailureDoesNotFailTheRequest() {
	s.expectAuthorized()
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(1)).Return("", sentinel.ErrNotFound)
	s.authority.EXPECT().CoSign(gomock.Any()).Return([]byte{0x02}, nil)
	s.store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	s.publisher.EXPECT().PublishTransfer(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	result, err := s.service.Create(s.ctx, s.mintRequest())
	s.Require().NoError(err)
	s.Equal(int64(1), result.Transfer.ID)
}

func (s *ServiceSuite) TestCurrentTransfer() {
	latest := &models.Transfer{ID: 3, Username: "alice", To: 7}
	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(7)).Return("alice", nil)
	s.store.EXPECT().Latest(gomock.Any(), "alice").Return(latest, nil)

	got, err := s.service.CurrentTransfer(s.ctx, 7)
	s.Require().NoError(err)
	s.Same(latest, got)
}

func (s *ServiceSuite) TestLookupsTranslateStoreErrors() {
	s.store.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, sentinel.ErrNotFound)
	_, err := s.service.Get(s.ctx, 5)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.store.EXPECT().CurrentUsername(gomock.Any(), uint64(8)).Return("", sentinel.ErrNotFound)
	_, err = s.service.CurrentTransfer(s.ctx, 8)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.store.EXPECT().Latest(gomock.Any(), "bob").Return(nil, errors.New("timeout"))
	_, err = s.service.Latest(s.ctx, "bob")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	s.store.EXPECT().History(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	_, err = s.service.History(s.ctx, models.HistoryFilter{})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestSigner() {
	s.authority.EXPECT().Address().Return(s.verifier)
	s.Equal(s.verifier, s.service.Signer())
}

func (s *ServiceSuite) assertRejected(err error, code models.ErrorCode) {
	s.T().Helper()
	var verr *models.ValidationError
	s.Require().True(errors.As(err, &verr), "expected validation error, got %v", err)
	s.Equal(code, verr.Code)
}

func TestTransferKind(t *testing.T) {
	assert.Equal(t, "mint", transferKind(&models.Transfer{From: 0, To: 1}))
	assert.Equal(t, "burn", transferKind(&models.Transfer{From: 1, To: 0}))
	assert.Equal(t, "transfer", transferKind(&models.Transfer{From: 1, To: 2}))
}

func TestNewDefaults(t *testing.T) {
	svc := New(nil, nil)
	require.NotNil(t, svc.logger)
	require.NotNil(t, svc.tracer)
	require.NoError(t, svc.usernames.Validate("alice"))
	require.Error(t, svc.usernames.Validate("Alice"))
}
