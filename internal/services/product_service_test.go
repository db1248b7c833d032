package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(fields models.ProductFields) (*models.Product, error) {
	args := m.Called(fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(id string, fields models.ProductFields, policy models.MergePolicy) (*models.Product, error) {
	args := m.Called(id, fields, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher records published product events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

var _ repositories.ProductRepository = (*MockProductRepository)(nil)

func laptopFields() models.ProductFields {
	return models.ProductFields{
		Name:        models.Ptr("Laptop"),
		Description: models.Ptr("Powerful laptop"),
		Price:       models.Ptr(1200.0),
		Category:    models.Ptr("Electronics"),
		InStock:     models.Ptr(true),
	}
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 2, nil)

	mockRepo.On("GetAll").Return([]models.Product{
		{ID: "1", Name: "Laptop", Category: "Electronics"},
		{ID: "2", Name: "Mouse", Category: "Electronics"},
		{ID: "3", Name: "Chair", Category: "Furniture"},
	}, nil).Once()

	page, err := service.ListProducts(services.ProductQuery{Category: "electronics"})
	assert.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsUsesDefaultLimit(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 2, nil)

	mockRepo.On("GetAll").Return([]models.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil).Once()

	page, err := service.ListProducts(services.ProductQuery{})
	assert.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, &services.PageRef{Page: 2, Limit: 2}, page.Next)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 10, nil)

	expected := &models.Product{ID: "1", Name: "Laptop"}
	mockRepo.On("GetByID", "1").Return(expected, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", "99").Return(nil, apperrors.NotFound(apperrors.MsgProductNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.Nil(t, product)
	assert.IsType(t, &apperrors.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 10, mockMQ)

	f := laptopFields()
	created := &models.Product{ID: "new-id", Name: "Laptop"}
	mockRepo.On("Create", f).Return(created, nil).Once()
	mockMQ.On("Publish", services.EventProductCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.ProductEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false
		}
		return event.Type == services.EventProductCreated && event.ProductID == "new-id"
	})).Return(nil).Once()

	product, err := service.CreateProduct(f)
	assert.NoError(t, err)
	assert.Equal(t, created, product)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 10, mockMQ)

	mockRepo.On("Delete", "1").Return(nil).Once()
	mockMQ.On("Publish", services.EventProductDeleted, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	assert.NoError(t, service.DeleteProduct("1"))
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_UpdateProductUsesConfiguredPolicy(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, models.MergeStrict, 10, nil)

	f := models.ProductFields{Price: models.Ptr(0.0)}
	updated := &models.Product{ID: "1", Price: 0}
	mockRepo.On("Update", "1", f, models.MergeStrict).Return(updated, nil).Once()

	product, err := service.UpdateProduct("1", f)
	assert.NoError(t, err)
	assert.Equal(t, updated, product)

	mockRepo.On("Update", "99", f, models.MergeStrict).Return(nil, apperrors.NotFound(apperrors.MsgProductNotFound)).Once()
	_, err = service.UpdateProduct("99", f)
	assert.IsType(t, &apperrors.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProductNotFoundSkipsEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, models.MergeLegacy, 10, mockMQ)

	mockRepo.On("Delete", "99").Return(apperrors.NotFound(apperrors.MsgProductNotFound)).Once()

	err := service.DeleteProduct("99")
	assert.IsType(t, &apperrors.NotFoundError{}, err)
	mockMQ.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_CategoryStatsSumsToTotal(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, models.MergeLegacy, 10, nil)
	service.Seed(models.DefaultCatalog())

	stats, err := service.CategoryStats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Electronics": 4, "Furniture": 1, "Stationery": 2}, stats)

	created, err := service.CreateProduct(laptopFields())
	require.NoError(t, err)
	require.NoError(t, service.DeleteProduct(created.ID))
	_, err = service.CreateProduct(models.ProductFields{
		Name: models.Ptr("Lamp"), Description: models.Ptr("Desk lamp"),
		Price: models.Ptr(30.0), Category: models.Ptr("Lighting"), InStock: models.Ptr(true),
	})
	require.NoError(t, err)

	stats, err = service.CategoryStats()
	require.NoError(t, err)
	all, err := repo.GetAll()
	require.NoError(t, err)
	total := 0
	for _, n := range stats {
		total += n
	}
	assert.Equal(t, len(all), total)
	assert.Equal(t, 1, stats["Lighting"])
}
