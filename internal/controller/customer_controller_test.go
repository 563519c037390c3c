package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/ecommerce-services/internal/controller"
	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
)

// --- Mock Service ---

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req model.CustomerRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, id string, req model.CustomerRequest) error {
	return m.Called(id, req).Error(0)
}

func (m *MockCustomerService) FindAllCustomers(ctx context.Context) ([]model.CustomerResponse, error) {
	args := m.Called()
	return args.Get(0).([]model.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerService) FindByID(ctx context.Context, id string) (*model.CustomerResponse, error) {
	args := m.Called(id)
	res, _ := args.Get(0).(*model.CustomerResponse)
	return res, args.Error(1)
}

func (m *MockCustomerService) DeleteByID(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func serveCustomers(svc *MockCustomerService, method, path, body string) *httptest.ResponseRecorder {
	ctrl := controller.NewCustomerController(svc)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Routes().ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestCreateCustomerReturnsID(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("CreateCustomer", mock.MatchedBy(func(r model.CustomerRequest) bool {
		return r.Email == "ada@example.com" && r.Address != nil && r.Address.ZipCode == "10115"
	})).Return("c-1", nil)

	w := serveCustomers(svc, http.MethodPost, "/", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","address":{"street":"Main","houseNumber":"1","zipCode":"10115"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var id string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&id))
	assert.Equal(t, "c-1", id)
	svc.AssertExpectations(t)
}

func TestCreateCustomerRejectsInvalidBody(t *testing.T) {
	svc := &MockCustomerService{}

	w := serveCustomers(svc, http.MethodPost, "/", `{"firstName":"","lastName":"Lovelace","email":"not-an-email"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var res struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Contains(t, res.Errors, "firstName")
	assert.Contains(t, res.Errors, "email")
	svc.AssertNotCalled(t, "CreateCustomer", mock.Anything)
}

func TestCreateCustomerMalformedJSON(t *testing.T) {
	w := serveCustomers(&MockCustomerService{}, http.MethodPost, "/", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCustomerAccepted(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("UpdateCustomer", "c-1", model.CustomerRequest{Email: "new@example.com"}).Return(nil)

	w := serveCustomers(svc, http.MethodPut, "/c-1", `{"email":"new@example.com"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdateCustomerAllowsBlankFields(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("UpdateCustomer", "c-1", model.CustomerRequest{}).Return(nil)

	w := serveCustomers(svc, http.MethodPut, "/c-1", `{"firstName":"","lastName":"","email":""}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestUpdateCustomerBadEmail(t *testing.T) {
	svc := &MockCustomerService{}
	w := serveCustomers(svc, http.MethodPut, "/c-1", `{"email":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateCustomer", mock.Anything, mock.Anything)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("UpdateCustomer", "missing", mock.Anything).Return(appErrors.NewCustomerNotFound("missing"))

	w := serveCustomers(svc, http.MethodPut, "/missing", `{"firstName":"X"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindAllCustomers(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("FindAllCustomers").Return([]model.CustomerResponse{{ID: "a"}, {ID: "b"}}, nil)

	w := serveCustomers(svc, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	var res []model.CustomerResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Len(t, res, 2)
}

func TestExistsByID(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("ExistsByID", "c-1").Return(true, nil)
	svc.On("ExistsByID", "c-2").Return(false, nil)

	assert.JSONEq(t, "true", serveCustomers(svc, http.MethodGet, "/exist/c-1", "").Body.String())
	assert.JSONEq(t, "false", serveCustomers(svc, http.MethodGet, "/exist/c-2", "").Body.String())
}

func TestFindCustomerByID(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("FindByID", "c-1").Return(&model.CustomerResponse{ID: "c-1", FirstName: "Ada"}, nil)
	svc.On("FindByID", "missing").Return(nil, appErrors.NewCustomerNotFound("missing"))

	w := serveCustomers(svc, http.MethodGet, "/c-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res model.CustomerResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "Ada", res.FirstName)

	w = serveCustomers(svc, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no customer found")
}

func TestDeleteCustomer(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("DeleteByID", "c-1").Return(nil)
	svc.On("DeleteByID", "missing").Return(appErrors.NewCustomerNotFound("missing"))

	assert.Equal(t, http.StatusAccepted, serveCustomers(svc, http.MethodDelete, "/c-1", "").Code)
	assert.Equal(t, http.StatusNotFound, serveCustomers(svc, http.MethodDelete, "/missing", "").Code)
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	svc := &MockCustomerService{}
	svc.On("FindAllCustomers").Return([]model.CustomerResponse(nil), assert.AnError)

	w := serveCustomers(svc, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}
