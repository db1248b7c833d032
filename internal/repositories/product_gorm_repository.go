package repositories

import (
	"errors"
	"fmt"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// productRecord is the table row behind a product. Seq preserves insertion order.
type productRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	ID          string `gorm:"uniqueIndex;type:varchar(36)"`
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

func (productRecord) TableName() string { return "products" }

func (rec productRecord) toModel() models.Product {
	return models.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Category:    rec.Category,
		InStock:     rec.InStock,
	}
}

func (rec *productRecord) fromModel(p models.Product) {
	rec.ID = p.ID
	rec.Name = p.Name
	rec.Description = p.Description
	rec.Price = p.Price
	rec.Category = p.Category
	rec.InStock = p.InStock
}

// OpenSQLite opens an sqlite database and migrates the products table.
// An in-memory DSN such as "file::memory:?cache=shared" keeps data for the process lifetime only.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&productRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate products table: %w", err)
	}
	return db, nil
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products in insertion order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var records []productRecord
	if err := r.db.Order("seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	rec, err := findByID(r.db, id)
	if err != nil {
		return nil, err
	}
	product := rec.toModel()
	return &product, nil
}

// Create inserts a new product with a generated ID. Deleted rows are not kept,
// so IDs are never reissued only because random UUIDs do not collide; the
// unique index turns a collision into an error instead of a silent reuse.
func (r *GORMProductRepository) Create(fields models.ProductFields) (*models.Product, error) {
	product := models.NewProduct(uuid.New().String(), fields)
	var rec productRecord
	rec.fromModel(product)
	if err := r.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update merges fields into an existing product inside a transaction.
func (r *GORMProductRepository) Update(id string, fields models.ProductFields, policy models.MergePolicy) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rec, err := findByID(tx, id)
		if err != nil {
			return err
		}
		product = rec.toModel()
		product.Apply(fields, policy)
		rec.fromModel(product)
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete deletes a product by its ID. The row is removed, not tombstoned.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&productRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.MsgProductNotFound)
	}
	return nil
}

func findByID(db *gorm.DB, id string) (*productRecord, error) {
	var rec productRecord
	if err := db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.MsgProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &rec, nil
}
