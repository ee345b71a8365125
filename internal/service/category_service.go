package service

import (
	"context"
	"strings"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Description string
	ParentID    *uint
	ImageURL    string
	IsActive    *bool
	SortOrder   int
}

// CategoryParameterInput 分类参数输入
type CategoryParameterInput struct {
	Name          string
	ParameterType string
	IsRequired    bool
	Choices       string
	SortOrder     int
}

// ListRoots 获取启用的顶级分类
func (s *CategoryService) ListRoots(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetCategoryRoots(ctx, &cached); err == nil && hit {
		return cached, nil
	}
	roots, err := s.repo.ListRoots(true)
	if err != nil {
		return nil, err
	}
	for i := range roots {
		roots[i].FullPath = roots[i].Name
	}
	if err := cache.SetCategoryRoots(ctx, roots); err != nil {
		logger.Warnw("category_roots_cache_set_failed", "error", err)
	}
	return roots, nil
}

// Tree 获取启用分类树
func (s *CategoryService) Tree(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetCategoryTree(ctx, &cached); err == nil && hit {
		return cached, nil
	}
	all, err := s.repo.ListAll(true)
	if err != nil {
		return nil, err
	}
	tree := buildCategoryTree(all)
	if err := cache.SetCategoryTree(ctx, tree); err != nil {
		logger.Warnw("category_tree_cache_set_failed", "error", err)
	}
	return tree, nil
}

// ListAll 后台分类列表（含停用）
func (s *CategoryService) ListAll() ([]models.Category, error) {
	all, err := s.repo.ListAll(false)
	if err != nil {
		return nil, err
	}
	paths := categoryPaths(all)
	for i := range all {
		all[i].FullPath = paths[all[i].ID]
	}
	return all, nil
}

// buildCategoryTree 以 parent_id 组装多级分类，父分类停用时其子树不出现
func buildCategoryTree(all []models.Category) []models.Category {
	children := make(map[uint][]models.Category)
	roots := make([]models.Category, 0)
	for _, category := range all {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		children[*category.ParentID] = append(children[*category.ParentID], category)
	}

	var attach func(node *models.Category, prefix string, depth int)
	attach = func(node *models.Category, prefix string, depth int) {
		node.FullPath = node.Name
		if prefix != "" {
			node.FullPath = prefix + " > " + node.Name
		}
		if depth > 16 {
			return
		}
		kids := children[node.ID]
		node.Children = make([]models.Category, 0, len(kids))
		for _, kid := range kids {
			attach(&kid, node.FullPath, depth+1)
			node.Children = append(node.Children, kid)
		}
	}
	for i := range roots {
		attach(&roots[i], "", 0)
	}
	return roots
}

func categoryPaths(all []models.Category) map[uint]string {
	byID := make(map[uint]models.Category, len(all))
	for _, category := range all {
		byID[category.ID] = category
	}
	paths := make(map[uint]string, len(all))
	for _, category := range all {
		names := []string{category.Name}
		seen := map[uint]bool{category.ID: true}
		current := category
		for current.ParentID != nil {
			parent, ok := byID[*current.ParentID]
			if !ok || seen[parent.ID] {
				break
			}
			seen[parent.ID] = true
			names = append([]string{parent.Name}, names...)
			current = parent
		}
		paths[category.ID] = strings.Join(names, " > ")
	}
	return paths
}

// GetByID 获取分类详情（含参数）
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	full, err := s.fullPath(category)
	if err != nil {
		return nil, err
	}
	category.FullPath = full
	for i := range category.Parameters {
		category.Parameters[i].ChoiceItems = category.Parameters[i].ChoiceList()
	}
	return category, nil
}

func (s *CategoryService) fullPath(category *models.Category) (string, error) {
	names := []string{category.Name}
	seen := map[uint]bool{category.ID: true}
	parentID := category.ParentID
	for parentID != nil && !seen[*parentID] {
		parent, err := s.repo.GetByID(*parentID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			break
		}
		seen[parent.ID] = true
		names = append([]string{parent.Name}, names...)
		parentID = parent.ParentID
	}
	return strings.Join(names, " > "), nil
}

// ListParameters 获取分类参数
func (s *CategoryService) ListParameters(categoryID uint) ([]models.CategoryParameter, error) {
	category, err := s.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	params, err := s.repo.ListParameters(categoryID)
	if err != nil {
		return nil, err
	}
	for i := range params {
		params[i].ChoiceItems = params[i].ChoiceList()
	}
	return params, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.repo.CountByName(name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}
	if err := s.validateParent(0, input.ParentID); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ParentID:    input.ParentID,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.repo.CountByName(name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}
	if err := s.validateParent(id, input.ParentID); err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.ParentID = input.ParentID
	category.ImageURL = strings.TrimSpace(input.ImageURL)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// validateParent 父分类必须存在且不能形成环
func (s *CategoryService) validateParent(id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if id != 0 && *parentID == id {
		return ErrCategoryParentInvalid
	}
	current := *parentID
	for depth := 0; depth < 32; depth++ {
		parent, err := s.repo.GetByID(current)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrCategoryParentInvalid
		}
		if parent.ParentID == nil {
			return nil
		}
		if id != 0 && *parent.ParentID == id {
			return ErrCategoryParentInvalid
		}
		current = *parent.ParentID
	}
	return ErrCategoryParentInvalid
}

// Delete 删除分类，存在子分类时拒绝
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	children, err := s.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// CreateParameter 新增分类参数
func (s *CategoryService) CreateParameter(ctx context.Context, categoryID uint, input CategoryParameterInput) (*models.CategoryParameter, error) {
	category, err := s.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	param := &models.CategoryParameter{CategoryID: categoryID}
	if err := applyParameterInput(param, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateParameter(param); err != nil {
		return nil, err
	}
	param.ChoiceItems = param.ChoiceList()
	s.invalidate(ctx)
	return param, nil
}

// UpdateParameter 更新分类参数
func (s *CategoryService) UpdateParameter(ctx context.Context, id uint, input CategoryParameterInput) (*models.CategoryParameter, error) {
	param, err := s.repo.GetParameter(id)
	if err != nil {
		return nil, err
	}
	if param == nil {
		return nil, ErrNotFound
	}
	if err := applyParameterInput(param, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateParameter(param); err != nil {
		return nil, err
	}
	param.ChoiceItems = param.ChoiceList()
	s.invalidate(ctx)
	return param, nil
}

// DeleteParameter 删除分类参数
func (s *CategoryService) DeleteParameter(ctx context.Context, id uint) error {
	param, err := s.repo.GetParameter(id)
	if err != nil {
		return err
	}
	if param == nil {
		return ErrNotFound
	}
	if err := s.repo.DeleteParameter(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func applyParameterInput(param *models.CategoryParameter, input CategoryParameterInput) error {
	name := strings.TrimSpace(input.Name)
	paramType := strings.ToLower(strings.TrimSpace(input.ParameterType))
	if paramType == "" {
		paramType = constants.CategoryParamText
	}
	if name == "" || !containsString(categoryParamTypes, paramType) {
		return ErrCategoryParamInvalid
	}
	param.Name = name
	param.ParameterType = paramType
	param.IsRequired = input.IsRequired
	param.Choices = strings.TrimSpace(input.Choices)
	param.SortOrder = input.SortOrder
	if (paramType == constants.CategoryParamChoice || paramType == constants.CategoryParamMultiChoice) && len(param.ChoiceList()) == 0 {
		return ErrCategoryParamInvalid
	}
	return nil
}

var categoryParamTypes = []string{
	constants.CategoryParamText,
	constants.CategoryParamNumber,
	constants.CategoryParamBoolean,
	constants.CategoryParamChoice,
	constants.CategoryParamMultiChoice,
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := cache.InvalidateCategories(ctx); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
