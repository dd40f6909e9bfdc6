package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "secretario/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *InMemoryStore
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	s.service = NewService(s.store, nil, 5*time.Minute, nil)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestSetValidatesDeclaredType() {
	_, err := s.service.Set(s.ctx, &Setting{Key: "territories", Value: "catorce", ValueType: TypeInt})
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))

	_, err = s.service.Set(s.ctx, &Setting{Key: "territories", Value: "14", ValueType: TypeInt})
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, "territories")
	s.Require().NoError(err)
	s.Equal("14", got.Value)
}

func (s *ServiceSuite) TestIntFallsBackWhenAbsent() {
	n, err := s.service.Int(s.ctx, "territories", 7)
	s.Require().NoError(err)
	s.Equal(7, n)

	_, err = s.service.Set(s.ctx, &Setting{Key: "territories", Value: "14", ValueType: TypeInt})
	s.Require().NoError(err)

	n, err = s.service.Int(s.ctx, "territories", 7)
	s.Require().NoError(err)
	s.Equal(14, n)
}

func (s *ServiceSuite) TestStringFallback() {
	name, err := s.service.String(s.ctx, "congregation_name", "")
	s.Require().NoError(err)
	s.Empty(name)

	_, err = s.service.Set(s.ctx, &Setting{Key: "congregation_name", Value: "Congregación Centro"})
	s.Require().NoError(err)

	name, err = s.service.String(s.ctx, "congregation_name", "")
	s.Require().NoError(err)
	s.Equal("Congregación Centro", name)
}

func (s *ServiceSuite) TestDeleteMissingKey() {
	err := s.service.Delete(s.ctx, "nope")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}
