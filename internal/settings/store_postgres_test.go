//go:build integration

package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"secretario/internal/settings"
	"secretario/pkg/platform/sentinel"
	"secretario/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *settings.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = settings.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "settings"))
}

func (s *PostgresStoreSuite) TestSetGetRoundTrip() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, &settings.Setting{Key: "territories", Value: "12", ValueType: settings.TypeInt}))

	got, err := s.store.Get(ctx, "territories")
	s.Require().NoError(err)
	s.Equal("12", got.Value)
	s.Equal(settings.TypeInt, got.ValueType)
	s.False(got.UpdatedAt.IsZero())

	// Second set overwrites the value.
	s.Require().NoError(s.store.Set(ctx, &settings.Setting{Key: "territories", Value: "14", ValueType: settings.TypeInt}))
	got, err = s.store.Get(ctx, "territories")
	s.Require().NoError(err)
	s.Equal("14", got.Value)
}

func (s *PostgresStoreSuite) TestListAndDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, &settings.Setting{Key: "congregation_name", Value: "Centro", ValueType: settings.TypeString}))
	s.Require().NoError(s.store.Set(ctx, &settings.Setting{Key: "territories", Value: "12", ValueType: settings.TypeInt}))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	s.Require().NoError(s.store.Delete(ctx, "territories"))
	_, err = s.store.Get(ctx, "territories")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, "territories"), sentinel.ErrNotFound)
}
