//go:build integration

package sessionstore_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/sessionstore"
	"storefront-checkout/internal/pkg/clock"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	clock     *clock.MockClock
	store     *sessionstore.RedisStore
}

func (s *RedisStoreTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	require.NoError(s.T(), s.client.Ping(ctx).Err())

	s.clock = clock.NewMockClock(time.Now().UTC())
	s.store = sessionstore.NewRedisStore(s.client, s.clock, slog.New(slog.DiscardHandler))
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisStoreTestSuite) SetupTest() {
	require.NoError(s.T(), s.client.FlushAll(context.Background()).Err())
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) session() *checkout.Session {
	return &checkout.Session{
		SessionID:   "sess-1",
		CartID:      "cart-1",
		OrderNumber: "ORD-1",
		StoreNumber: "0042",
		Customer:    checkout.CustomerSnapshot{ID: "cust-1", Tier: "STANDARD"},
		LineItems: []checkout.LineItem{
			{SKU: "SKU-1", Description: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		},
		Fulfillment:   checkout.FulfillmentDetails{Type: checkout.FulfillmentPickup},
		ReservationID: "RES-1",
		Subtotal:      decimal.RequireFromString("21.00"),
		TaxTotal:      decimal.RequireFromString("1.68"),
		GrandTotal:    decimal.RequireFromString("22.68"),
		ExpiresAt:     s.clock.Now().Add(15 * time.Minute),
	}
}

func (s *RedisStoreTestSuite) TestRoundTrip() {
	ctx := context.Background()
	sess := s.session()

	s.Require().NoError(s.store.Save(ctx, sess))

	found, err := s.store.FindByID(ctx, sess.SessionID)
	s.Require().NoError(err)
	s.Equal(sess.SessionID, found.SessionID)
	s.Equal(sess.OrderNumber, found.OrderNumber)
	s.True(found.GrandTotal.Equal(sess.GrandTotal))
	s.Len(found.LineItems, 1)

	exists, err := s.store.Exists(ctx, sess.SessionID)
	s.Require().NoError(err)
	s.True(exists)

	ttl, err := s.client.TTL(ctx, "checkout:session:"+sess.SessionID).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 15*time.Minute)
	s.LessOrEqual(ttl, 20*time.Minute)
}

func (s *RedisStoreTestSuite) TestFindMissingIsNotFound() {
	_, err := s.store.FindByID(context.Background(), "missing")
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *RedisStoreTestSuite) TestCorruptPayloadIsNotFound() {
	ctx := context.Background()
	s.Require().NoError(s.client.Set(ctx, "checkout:session:corrupt", "{not json", time.Minute).Err())

	_, err := s.store.FindByID(ctx, "corrupt")
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *RedisStoreTestSuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	sess := s.session()
	s.Require().NoError(s.store.Save(ctx, sess))

	s.Require().NoError(s.store.DeleteByID(ctx, sess.SessionID))
	s.Require().NoError(s.store.DeleteByID(ctx, sess.SessionID))

	exists, err := s.store.Exists(ctx, sess.SessionID)
	s.Require().NoError(err)
	s.False(exists)
}
