package service

import (
	"strings"

	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"
)

// ProductInput 商品写入输入
type ProductInput struct {
	CategoryID  uint
	Slug        string
	Name        string
	Description string
	Price       models.Money
	Unit        string
	Images      models.StringArray
	Variants    models.StringArray
	Stock       int
	IsActive    bool
	SortOrder   int
}

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// List 商品列表
// 前台读取失败时降级为空列表，仅记录日志
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		logger.Warnw("product_list_failed", "error", err)
		return []models.Product{}, 0
	}
	return products, total
}

// ListAdmin 管理端商品列表，错误上抛
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 前台按 slug 获取商品
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Get 管理端按 ID 获取商品
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	count, err := s.productRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Slug:        slug,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Unit:        strings.TrimSpace(input.Unit),
		Images:      input.Images,
		Variants:    input.Variants,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != product.Slug {
		count, err := s.productRepo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		product.Slug = slug
	}
	if input.CategoryID > 0 && input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = input.CategoryID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Description = input.Description
	product.Price = input.Price
	product.Unit = strings.TrimSpace(input.Unit)
	product.Images = input.Images
	product.Variants = input.Variants
	product.Stock = input.Stock
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}
