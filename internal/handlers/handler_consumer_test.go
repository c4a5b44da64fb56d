package handlers_test

import (
	"net/http"
	"testing"

	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConsumerHandlerTestSuite struct {
	handlerSuite
}

func TestConsumerHandler(t *testing.T) {
	suite.Run(t, new(ConsumerHandlerTestSuite))
}

func (s *ConsumerHandlerTestSuite) TestCreate_Success() {
	req := dto.CreateConsumerRequest{Name: "Jane Doe", Address: "1 Main St", SSN: "123-45-6789"}
	s.consumers.On("CreateConsumer", mock.Anything, req).
		Return(&domain.Consumer{ID: 4, Name: req.Name, Address: req.Address, SSN: req.SSN}, nil).Once()

	w := s.do(http.MethodPost, "/consumers/", req)

	s.Equal(http.StatusCreated, w.Code)
	s.JSONEq(`{"id":4,"name":"Jane Doe","address":"1 Main St","ssn":"123-45-6789"}`, w.Body.String())
}

func (s *ConsumerHandlerTestSuite) TestCreate_RejectsMalformedSSN() {
	for _, ssn := range []string{"123456789", "12-345-6789", "abc-de-fghi", "123-45-67890"} {
		w := s.do(http.MethodPost, "/consumers/", dto.CreateConsumerRequest{Name: "Jane", Address: "1 Main St", SSN: ssn})
		s.Equal(http.StatusBadRequest, w.Code, ssn)
	}
	s.consumers.AssertNotCalled(s.T(), "CreateConsumer", mock.Anything, mock.Anything)
}

func (s *ConsumerHandlerTestSuite) TestUpdate_ValidatesSSNOnlyWhenPresent() {
	address := "2 Side St"
	s.consumers.On("UpdateConsumer", mock.Anything, int64(4), dto.UpdateConsumerRequest{Address: &address}).
		Return(&domain.Consumer{ID: 4, Address: address}, nil).Once()

	ok := s.do(http.MethodPut, "/consumers/4", `{"address":"2 Side St"}`)
	s.Equal(http.StatusOK, ok.Code)

	bad := s.do(http.MethodPut, "/consumers/4", `{"ssn":"nope"}`)
	s.Equal(http.StatusBadRequest, bad.Code)
}

func (s *ConsumerHandlerTestSuite) TestList() {
	s.consumers.On("ListConsumers", mock.Anything, (*string)(nil)).
		Return([]domain.Consumer{}, (*string)(nil), nil).Once()

	w := s.do(http.MethodGet, "/consumers/", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"next":null,"results":[]}`, w.Body.String())
}
