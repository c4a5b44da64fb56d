package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CollectionAgencyHandlerTestSuite struct {
	handlerSuite
}

func TestCollectionAgencyHandler(t *testing.T) {
	suite.Run(t, new(CollectionAgencyHandlerTestSuite))
}

func (s *CollectionAgencyHandlerTestSuite) TestList_ReturnsPageWithNextCursor() {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	agencies := []domain.CollectionAgency{
		{ID: 1, Name: "Acme Recovery", ContactInfo: "ops@acme.test", Timestamps: domain.Timestamps{CreatedAt: created}},
		{ID: 2, Name: "Beta Collections", Timestamps: domain.Timestamps{CreatedAt: created}},
	}
	s.agencies.On("ListCollectionAgencies", mock.Anything, (*string)(nil)).
		Return(agencies, strPtr("next-token"), nil).Once()

	w := s.do(http.MethodGet, "/collection-agencies/", nil)

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListCollectionAgenciesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().NotNil(body.Next)
	s.Equal("next-token", *body.Next)
	s.Require().Len(body.Results, 2)
	s.Equal("Acme Recovery", body.Results[0].Name)
	s.Equal("ops@acme.test", body.Results[0].ContactInfo)
}

func (s *CollectionAgencyHandlerTestSuite) TestList_PassesCursor() {
	s.agencies.On("ListCollectionAgencies", mock.Anything, strPtr("abc")).
		Return([]domain.CollectionAgency{}, (*string)(nil), nil).Once()

	w := s.do(http.MethodGet, "/collection-agencies/?cursor=abc", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"next":null,"results":[]}`, w.Body.String())
}

func (s *CollectionAgencyHandlerTestSuite) TestList_InvalidCursor() {
	s.agencies.On("ListCollectionAgencies", mock.Anything, strPtr("bogus")).
		Return(nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid cursor", errors.New("decode"))).Once()

	w := s.do(http.MethodGet, "/collection-agencies/?cursor=bogus", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid cursor", s.errorBody(w))
}

func (s *CollectionAgencyHandlerTestSuite) TestCreate_Success() {
	req := dto.CreateCollectionAgencyRequest{Name: "Acme Recovery", ContactInfo: "555-0100"}
	s.agencies.On("CreateCollectionAgency", mock.Anything, req).
		Return(&domain.CollectionAgency{ID: 9, Name: req.Name, ContactInfo: req.ContactInfo}, nil).Once()

	w := s.do(http.MethodPost, "/collection-agencies/", req)

	s.Equal(http.StatusCreated, w.Code)
	var body dto.CollectionAgencyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(int64(9), body.ID)
	s.Equal("555-0100", body.ContactInfo)
}

func (s *CollectionAgencyHandlerTestSuite) TestCreate_MissingName() {
	w := s.do(http.MethodPost, "/collection-agencies/", `{"contact_info":"x"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w), "Invalid request format")
}

func (s *CollectionAgencyHandlerTestSuite) TestGet_NotFound() {
	s.agencies.On("GetCollectionAgencyByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/collection-agencies/42", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Collection agency not found", s.errorBody(w))
}

func (s *CollectionAgencyHandlerTestSuite) TestGet_NonNumericID() {
	w := s.do(http.MethodGet, "/collection-agencies/abc", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.agencies.AssertNotCalled(s.T(), "GetCollectionAgencyByID", mock.Anything, mock.Anything)
}

func (s *CollectionAgencyHandlerTestSuite) TestUpdate_PartialFields() {
	name := "Renamed"
	s.agencies.On("UpdateCollectionAgency", mock.Anything, int64(3), dto.UpdateCollectionAgencyRequest{Name: &name}).
		Return(&domain.CollectionAgency{ID: 3, Name: name}, nil).Once()

	w := s.do(http.MethodPatch, "/collection-agencies/3", `{"name":"Renamed"}`)

	s.Equal(http.StatusOK, w.Code)
}

func (s *CollectionAgencyHandlerTestSuite) TestDelete() {
	s.agencies.On("DeleteCollectionAgency", mock.Anything, int64(3)).Return(nil).Once()

	w := s.do(http.MethodDelete, "/collection-agencies/3", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *CollectionAgencyHandlerTestSuite) TestDelete_UnexpectedError() {
	s.agencies.On("DeleteCollectionAgency", mock.Anything, int64(3)).Return(errors.New("connection refused")).Once()

	w := s.do(http.MethodDelete, "/collection-agencies/3", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to delete collection agency", s.errorBody(w))
}

func (s *CollectionAgencyHandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}
