//go:build integration

package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"secretario/internal/audit"
	txcontext "secretario/pkg/platform/tx"
	"secretario/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *audit.PostgresStore
}

func TestOutboxSuite(t *testing.T) {
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = audit.NewPostgresStore(s.pg.DB)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "outbox"))
}

func (s *OutboxSuite) TestAppendAndPublish() {
	ctx := context.Background()

	s.Require().NoError(s.store.Append(ctx, audit.Event{Action: "report.saved", Subject: "report/1"}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{Action: "report.saved", Subject: "report/2"}))

	pending, err := s.store.ListUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal("report.saved", pending[0].EventType)

	ids := []uuid.UUID{pending[0].ID, pending[1].ID}
	s.Require().NoError(s.store.MarkPublished(ctx, ids))

	pending, err = s.store.ListUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *OutboxSuite) TestAppendJoinsCallerTransaction() {
	ctx := context.Background()

	boom := errors.New("boom")
	err := txcontext.Run(ctx, s.pg.DB, func(ctx context.Context) error {
		if err := s.store.Append(ctx, audit.Event{Action: "publisher.imported", Subject: "publisher/1"}); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	// The rollback took the audit row with it.
	pending, err := s.store.ListUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *OutboxSuite) TestListHonorsLimit() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Append(ctx, audit.Event{Action: "attendance.saved", Subject: "attendance"}))
	}

	pending, err := s.store.ListUnpublished(ctx, 3)
	s.Require().NoError(err)
	s.Len(pending, 3)
}
