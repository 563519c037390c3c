package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
	"github.com/unclebandit/ecommerce-services/internal/service"
)

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockCustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func storedAlice() *model.Customer {
	return &model.Customer{
		ID:        "c-1",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Address:   model.Address{Street: "Main", HouseNumber: "1", ZipCode: "00100"},
	}
}

func TestCreateCustomer(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(c *model.Customer) bool {
		return c.FirstName == "Bob" && c.Address.Street == "Elm"
	})).Return(nil)

	id, err := svc.CreateCustomer(ctx, model.CustomerRequest{
		FirstName: "Bob",
		LastName:  "Jones",
		Email:     "bob@example.com",
		Address:   &model.Address{Street: "Elm"},
	})

	require.NoError(t, err)
	assert.Equal(t, "generated-id", id)
	repo.AssertExpectations(t)
}

func TestUpdateCustomer_BlankFieldsLeaveRecordUnchanged(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	stored := storedAlice()
	repo.On("GetByID", ctx, "c-1").Return(stored, nil)

	err := svc.UpdateCustomer(ctx, "c-1", model.CustomerRequest{FirstName: " ", LastName: "", Email: ""})

	require.NoError(t, err)
	assert.Equal(t, storedAlice(), stored)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCustomer_OnlyEmailChanges(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("GetByID", ctx, "c-1").Return(storedAlice(), nil)

	want := storedAlice()
	want.Email = "alice@new.example.com"
	repo.On("Update", ctx, want).Return(nil)

	err := svc.UpdateCustomer(ctx, "c-1", model.CustomerRequest{Email: "alice@new.example.com"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateCustomer_ReplacesAddress(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("GetByID", ctx, "c-1").Return(storedAlice(), nil)

	want := storedAlice()
	want.Address = model.Address{Street: "Oak", HouseNumber: "9", ZipCode: "555"}
	repo.On("Update", ctx, want).Return(nil)

	err := svc.UpdateCustomer(ctx, "c-1", model.CustomerRequest{Address: &model.Address{Street: "Oak", HouseNumber: "9", ZipCode: "555"}})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("GetByID", ctx, "nope").Return(nil, appErrors.NewCustomerNotFound("nope"))

	err := svc.UpdateCustomer(ctx, "nope", model.CustomerRequest{Email: "x@example.com"})

	var nf *appErrors.ErrCustomerNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.CustomerID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFindAllCustomers(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("ListAll", ctx).Return([]model.Customer{*storedAlice(), {ID: "c-2", FirstName: "Bob"}}, nil)

	res, err := svc.FindAllCustomers(ctx)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "c-1", res[0].ID)
	assert.Equal(t, "c-2", res[1].ID)
}

func TestFindByID_IsIdempotent(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("GetByID", ctx, "c-1").Return(storedAlice(), nil).Twice()

	first, err := svc.FindByID(ctx, "c-1")
	require.NoError(t, err)
	second, err := svc.FindByID(ctx, "c-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestExistsAndDelete(t *testing.T) {
	repo := new(MockCustomerRepo)
	svc := &service.CustomerService{CustomerRepo: repo}
	ctx := context.Background()

	repo.On("ExistsByID", ctx, "c-1").Return(true, nil)
	repo.On("Delete", ctx, "c-1").Return(nil)
	repo.On("Delete", ctx, "gone").Return(appErrors.NewCustomerNotFound("gone"))

	exists, err := svc.ExistsByID(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, svc.DeleteByID(ctx, "c-1"))

	var nf *appErrors.ErrCustomerNotFound
	assert.ErrorAs(t, svc.DeleteByID(ctx, "gone"), &nf)
}
