//go:build unit

package commands_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/shared"
	"storefront-checkout/tests/common/builder"
	commandsmock "storefront-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutCommandsTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockCarts       *commandsmock.MockCartGateway
	mockDiscounts   *commandsmock.MockDiscountGateway
	mockFulfillment *commandsmock.MockFulfillmentGateway
	mockPayments    *commandsmock.MockPaymentGateway
	mockSessions    *commandsmock.MockSessionStore
	mockOrders      *commandsmock.MockOrderRepository
	clock           *clock.MockClock
	usecase         commands.CheckoutCommands
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCarts = commandsmock.NewMockCartGateway(s.mockCtrl)
	s.mockDiscounts = commandsmock.NewMockDiscountGateway(s.mockCtrl)
	s.mockFulfillment = commandsmock.NewMockFulfillmentGateway(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.mockSessions = commandsmock.NewMockSessionStore(s.mockCtrl)
	s.mockOrders = commandsmock.NewMockOrderRepository(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))

	logger := slog.New(slog.DiscardHandler)
	cfg := config.CheckoutConfig{
		SessionLifetime:   15 * time.Minute,
		BestEffortTimeout: time.Second,
	}

	s.usecase = commands.NewCheckoutCommands(
		s.mockCarts,
		s.mockDiscounts,
		commands.NewReservationCoordinator(s.mockFulfillment, time.Second, logger),
		commands.NewPaymentCoordinator(s.mockPayments, logger),
		s.mockSessions,
		s.mockOrders,
		s.clock,
		cfg,
		logger,
	)
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

func (s *CheckoutCommandsTestSuite) meta(store string) shared.RequestMeta {
	return shared.RequestMeta{
		UserID:        uuid.New(),
		UserSessionID: "pos-terminal-7",
		StoreNumber:   store,
	}
}

func (s *CheckoutCommandsTestSuite) initiateParams(b *builder.CheckoutBuilder) commands.InitiateCheckoutParams {
	return commands.InitiateCheckoutParams{
		CartID:          b.CartID,
		FulfillmentType: b.FulfillmentType,
	}
}

// ================================================================================
// InitiateCheckout
// ================================================================================

func (s *CheckoutCommandsTestSuite) TestInitiateCheckout() {
	s.Run("success: totals are copied from the snapshot unchanged", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(&commands.ReservationResult{ReservationID: b.ReservationID}, nil)

		var saved *checkout.Session
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, sess *checkout.Session) error {
				saved = sess
				return nil
			})

		summary, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().NoError(err)

		s.True(summary.GrandTotal.Equal(decimal.NewFromInt(54)))
		s.True(summary.Subtotal.Equal(b.Subtotal))
		s.True(summary.TaxTotal.Equal(b.TaxTotal))
		s.Equal(b.ReservationID, summary.ReservationID)
		s.Len(summary.LineItems, 2)
		s.Equal(s.clock.Now().Add(15*time.Minute), summary.ExpiresAt)

		s.Require().NotNil(saved)
		s.Equal(summary.SessionID, saved.SessionID)
		s.Equal(b.CartID, saved.CartID)
	})

	s.Run("success: uses the pre-assigned order number when given", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()
		meta := s.meta(b.StoreNumber)
		meta.OrderNumber = "ORD-PREASSIGNED1"

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.ReservationRequest) (*commands.ReservationResult, error) {
				s.Equal("ORD-PREASSIGNED1", req.OrderNumber)
				return &commands.ReservationResult{ReservationID: b.ReservationID}, nil
			})
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), meta)
		s.Require().NoError(err)
		s.Equal("ORD-PREASSIGNED1", summary.OrderNumber)
	})

	s.Run("success: generates an order number when none is given", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(&commands.ReservationResult{ReservationID: b.ReservationID}, nil)
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().NoError(err)
		s.True(strings.HasPrefix(summary.OrderNumber, "ORD-"))
		s.Len(summary.OrderNumber, len("ORD-")+12)
	})

	s.Run("success: TAKE_NOW assigns a placeholder reservation without calling fulfillment", func() {
		b := builder.NewCheckoutBuilder()
		b.FulfillmentType = checkout.FulfillmentTakeNow
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().NoError(err)
		s.True(strings.HasPrefix(summary.ReservationID, "IMMEDIATE-"))
	})

	s.Run("success: valid discounts are applied to the session", func() {
		b := builder.NewCheckoutBuilder()
		b.DiscountCodes = []string{"SPRING10"}
		snap := b.BuildSnapshot()
		applied := []checkout.AppliedDiscount{{Code: "SPRING10", Amount: decimal.NewFromInt(5)}}

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockDiscounts.EXPECT().ValidateAndCalculate(gomock.Any(), gomock.Any()).
			Return(&commands.DiscountValidationResult{Valid: true, Applied: applied}, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(&commands.ReservationResult{ReservationID: b.ReservationID}, nil)
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().NoError(err)
		s.Require().Len(summary.AppliedDiscounts, 1)
		s.Equal("SPRING10", summary.AppliedDiscounts[0].Code)
	})

	s.Run("error: cart not found", func() {
		b := builder.NewCheckoutBuilder()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).
			Return(nil, infra.WrapRepoErr("cart not found", errors.New("404"), infra.KindNotFound))

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrCartNotFound)
	})

	s.Run("error: validation aggregates every violation", func() {
		b := builder.NewCheckoutBuilder()
		b.Items[0].Quantity = 0
		b.Subtotal = decimal.Zero
		b.GrandTotal = decimal.Zero
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().ErrorIs(err, commands.ErrCartValidationFailed)

		var ve *commands.CartValidationError
		s.Require().ErrorAs(err, &ve)
		s.Len(ve.Violations, 3)
	})

	s.Run("error: store mismatch fails validation", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, "0099").Return(snap, nil)

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta("0099"))
		s.ErrorIs(err, commands.ErrCartValidationFailed)
	})

	s.Run("error: invalid discount stops before reservation", func() {
		b := builder.NewCheckoutBuilder()
		b.DiscountCodes = []string{"EXPIRED"}
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockDiscounts.EXPECT().ValidateAndCalculate(gomock.Any(), gomock.Any()).
			Return(&commands.DiscountValidationResult{Valid: false, InvalidCodes: []string{"EXPIRED"}}, nil)

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().ErrorIs(err, commands.ErrInvalidDiscount)

		var de *commands.InvalidDiscountError
		s.Require().ErrorAs(err, &de)
		s.Equal([]string{"EXPIRED"}, de.Codes)
	})

	s.Run("error: unavailable items surface with their SKUs", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(&commands.ReservationResult{UnavailableItems: []string{"SKU-200"}}, nil)

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.Require().ErrorIs(err, commands.ErrFulfillmentUnavailable)

		var fe *commands.FulfillmentUnavailableError
		s.Require().ErrorAs(err, &fe)
		s.Equal([]string{"SKU-200"}, fe.Items)
	})

	s.Run("error: session write failure after reservation is internal", func() {
		b := builder.NewCheckoutBuilder()
		snap := b.BuildSnapshot()

		s.mockCarts.EXPECT().GetCart(gomock.Any(), b.CartID, b.StoreNumber).Return(snap, nil)
		s.mockFulfillment.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(&commands.ReservationResult{ReservationID: b.ReservationID}, nil)
		s.mockSessions.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("redis down", errors.New("dial refused"), infra.KindUnavailable))

		_, err := s.usecase.InitiateCheckout(s.T().Context(), s.initiateParams(b), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrCheckoutInternal)
	})
}

// ================================================================================
// CompleteCheckout
// ================================================================================

func (s *CheckoutCommandsTestSuite) completeParams(sessionID string) commands.CompleteCheckoutParams {
	return commands.CompleteCheckoutParams{
		SessionID:     sessionID,
		PaymentMethod: "CASH",
	}
}

func (s *CheckoutCommandsTestSuite) TestCompleteCheckout() {
	s.Run("success: charges grand total, persists the order and deletes the session", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.PaymentRequest) (*commands.PaymentResult, error) {
				s.True(req.Amount.Equal(decimal.NewFromInt(54)))
				s.Equal("CASH", req.Method)
				s.Equal(sess.OrderNumber, req.OrderNumber)
				return &commands.PaymentResult{Success: true, PaymentReference: "PAY-123"}, nil
			})
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockSessions.EXPECT().DeleteByID(gomock.Any(), sess.SessionID).Return(nil)
		s.mockCarts.EXPECT().MarkCompleted(gomock.Any(), sess.CartID, sess.StoreNumber).Return(nil)

		result, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.Require().NoError(err)
		s.Equal(sess.OrderNumber, result.OrderNumber)
		s.Equal("PAID", result.Status)
		s.Equal("COMPLETED", result.PaymentStatus)
		s.Equal("PAY-123", result.PaymentReference)
	})

	s.Run("success: cart completion failure does not fail checkout", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: true, PaymentReference: "PAY-123"}, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockSessions.EXPECT().DeleteByID(gomock.Any(), sess.SessionID).Return(nil)
		s.mockCarts.EXPECT().MarkCompleted(gomock.Any(), sess.CartID, sess.StoreNumber).
			Return(errors.New("cart service down"))

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.NoError(err)
	})

	s.Run("success: session delete failure after persist does not fail checkout", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: true, PaymentReference: "PAY-123"}, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockSessions.EXPECT().DeleteByID(gomock.Any(), sess.SessionID).
			Return(infra.WrapRepoErr("redis down", errors.New("timeout"), infra.KindUnavailable))
		s.mockCarts.EXPECT().MarkCompleted(gomock.Any(), sess.CartID, sess.StoreNumber).Return(nil)

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.NoError(err)
	})

	s.Run("error: session not found", func() {
		s.mockSessions.EXPECT().FindByID(gomock.Any(), "missing").
			Return(nil, infra.WrapRepoErr("session not found", errors.New("nil"), infra.KindNotFound))

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams("missing"), s.meta("0042"))
		s.ErrorIs(err, commands.ErrSessionNotFound)
	})

	s.Run("error: store mismatch leaves the session untouched", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta("0099"))
		s.ErrorIs(err, commands.ErrSessionStoreMismatch)
	})

	s.Run("error: expired session is swept and rejected", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()
		s.clock.Set(sess.ExpiresAt.Add(time.Second))

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockSessions.EXPECT().DeleteByID(gomock.Any(), sess.SessionID).Return(nil)

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrSessionExpired)
	})

	s.Run("error: decline cancels the reservation exactly once and keeps the session", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: false, Message: "insufficient funds"}, nil)
		s.mockFulfillment.EXPECT().CancelReservation(gomock.Any(), sess.ReservationID).Return(nil).Times(1)

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.Require().ErrorIs(err, commands.ErrPaymentFailed)

		var pe *commands.PaymentDeclinedError
		s.Require().ErrorAs(err, &pe)
		s.Equal("insufficient funds", pe.Message)
	})

	s.Run("error: decline with a placeholder reservation skips cancellation", func() {
		b := builder.NewCheckoutBuilder()
		b.FulfillmentType = checkout.FulfillmentTakeNow
		b.ReservationID = "IMMEDIATE-" + uuid.NewString()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: false, Message: "declined"}, nil)

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrPaymentFailed)
	})

	s.Run("error: decline still surfaces when cancellation itself fails", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: false, Message: "declined"}, nil)
		s.mockFulfillment.EXPECT().CancelReservation(gomock.Any(), sess.ReservationID).
			Return(errors.New("fulfillment down"))

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrPaymentFailed)
	})

	s.Run("error: transport failure is indeterminate and never compensates", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrPaymentIndeterminate)
		s.NotErrorIs(err, commands.ErrPaymentFailed)
	})

	s.Run("error: order persist failure keeps the session for retry", func() {
		b := builder.NewCheckoutBuilder()
		sess := b.BuildSession()

		s.mockSessions.EXPECT().FindByID(gomock.Any(), sess.SessionID).Return(sess, nil)
		s.mockPayments.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
			Return(&commands.PaymentResult{Success: true, PaymentReference: "PAY-123"}, nil)
		s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("db down", errors.New("timeout"), infra.KindDBFailure))

		_, err := s.usecase.CompleteCheckout(s.T().Context(), s.completeParams(sess.SessionID), s.meta(b.StoreNumber))
		s.ErrorIs(err, commands.ErrCheckoutInternal)
	})
}
