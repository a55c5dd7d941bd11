package service

import (
	"strings"

	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/repository"
)

// CategoryInput 分类写入输入
type CategoryInput struct {
	Slug      string
	Name      string
	Icon      string
	SortOrder int
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
// 前台读取失败时降级为空列表，仅记录日志
func (s *CategoryService) List() []models.Category {
	categories, err := s.categoryRepo.List()
	if err != nil {
		logger.Warnw("category_list_failed", "error", err)
		return []models.Category{}
	}
	return categories
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.categoryRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := &models.Category{
		Slug:      slug,
		Name:      name,
		Icon:      strings.TrimSpace(input.Icon),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != category.Slug {
		count, err := s.categoryRepo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		category.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍有商品挂靠时拒绝删除
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}
