package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func TestCategoryServiceTreeAndFullPath(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "category_tree")
	svc := NewCategoryService(repository.NewCategoryRepository(env.db))
	ctx := context.Background()

	create := func(name string, parentID *uint, sortOrder int, active bool) *models.Category {
		t.Helper()
		category, err := svc.Create(ctx, CategoryInput{Name: name, ParentID: parentID, SortOrder: sortOrder, IsActive: boolPtr(active)})
		if err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
		return category
	}
	electronics := create("Electronics", nil, 1, true)
	phones := create("Phones", &electronics.ID, 1, true)
	android := create("Android", &phones.ID, 1, true)
	create("Books", nil, 2, true)
	archived := create("Archived", nil, 3, false)
	create("Hidden Child", &archived.ID, 1, true)

	tree, err := svc.Tree(ctx)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 active roots, got %d", len(tree))
	}
	var root *models.Category
	for i := range tree {
		if tree[i].ID == electronics.ID {
			root = &tree[i]
		}
		if tree[i].ID == archived.ID {
			t.Fatalf("inactive root must not appear")
		}
	}
	if root == nil || len(root.Children) != 1 || len(root.Children[0].Children) != 1 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}
	leaf := root.Children[0].Children[0]
	if leaf.ID != android.ID || leaf.FullPath != "Electronics > Phones > Android" {
		t.Fatalf("unexpected leaf: id=%d path=%q", leaf.ID, leaf.FullPath)
	}

	detail, err := svc.GetByID(android.ID)
	if err != nil {
		t.Fatalf("get category failed: %v", err)
	}
	if detail.FullPath != "Electronics > Phones > Android" {
		t.Fatalf("unexpected full path: %q", detail.FullPath)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	paths := make(map[string]string, len(all))
	for _, category := range all {
		paths[category.Name] = category.FullPath
	}
	if paths["Hidden Child"] != "Archived > Hidden Child" || paths["Books"] != "Books" {
		t.Fatalf("unexpected admin paths: %+v", paths)
	}
}

func TestCategoryServiceParentValidation(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "category_parent")
	svc := NewCategoryService(repository.NewCategoryRepository(env.db))
	ctx := context.Background()

	parent, err := svc.Create(ctx, CategoryInput{Name: "Furniture"})
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	child, err := svc.Create(ctx, CategoryInput{Name: "Desks", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	if _, err := svc.Create(ctx, CategoryInput{Name: "Furniture"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
	missing := uint(9999)
	if _, err := svc.Create(ctx, CategoryInput{Name: "Orphan", ParentID: &missing}); !errors.Is(err, ErrCategoryParentInvalid) {
		t.Fatalf("expected invalid parent, got %v", err)
	}
	if _, err := svc.Update(ctx, parent.ID, CategoryInput{Name: "Furniture", ParentID: &child.ID}); !errors.Is(err, ErrCategoryParentInvalid) {
		t.Fatalf("cycles must be rejected, got %v", err)
	}
	if err := svc.Delete(ctx, parent.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("categories with children cannot be deleted, got %v", err)
	}
	if err := svc.Delete(ctx, child.ID); err != nil {
		t.Fatalf("delete child failed: %v", err)
	}
	if _, err := svc.GetByID(child.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
