package service

import (
	"context"
	"testing"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
)

func TestCategory_CreateUnderParent(t *testing.T) {
	env := newTestEnv(t)

	parent, err := env.category.Create(context.Background(), dto.CategoryReq{Name: "Electronics"})
	if err != nil {
		t.Fatalf("创建根分类失败: %v", err)
	}
	if !parent.IsLeaf {
		t.Error("新建分类默认应是叶子")
	}

	child, err := env.category.Create(context.Background(), dto.CategoryReq{
		Name: "Phones", ParentID: parent.ID,
	})
	if err != nil {
		t.Fatalf("创建子分类失败: %v", err)
	}
	if child.ParentID != parent.ID {
		t.Errorf("parent_id = %d, want %d", child.ParentID, parent.ID)
	}

	// 有了孩子之后父分类不再是叶子
	refreshed, _ := env.categoryRepo.GetByID(context.Background(), parent.ID)
	if refreshed.IsLeaf {
		t.Error("有子分类的父节点不应是叶子")
	}
}

func TestCategory_NameConflict(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.category.Create(context.Background(), dto.CategoryReq{Name: "Outdoor"}); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if _, err := env.category.Create(context.Background(), dto.CategoryReq{Name: "Outdoor"}); err == nil {
		t.Fatal("重名分类应该被拒绝")
	}
}

func TestCategory_DeleteWithChildrenRejected(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Home"})
	if _, err := env.category.Create(context.Background(), dto.CategoryReq{Name: "Kitchen", ParentID: parent.ID}); err != nil {
		t.Fatalf("创建子分类失败: %v", err)
	}

	if err := env.category.Delete(context.Background(), parent.ID); err == nil {
		t.Fatal("带子分类的删除应该被拒绝")
	}
}

func TestCategory_DeleteWithProductsRejected(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "candles")

	if _, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Soy Candle", CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if err := env.category.Delete(context.Background(), category.ID); err == nil {
		t.Fatal("挂着商品的分类删除应该被拒绝")
	}
}

func TestCategory_DeleteChecksLiveCount(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "rugs")

	// 冗余计数漂移成 0，但实表还有商品
	if _, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Wool Rug", CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if err := env.categoryRepo.SetProductCount(context.Background(), category.ID, 0); err != nil {
		t.Fatalf("重置计数失败: %v", err)
	}

	if err := env.category.Delete(context.Background(), category.ID); err == nil {
		t.Fatal("实表有商品时即便计数为 0 也应拒绝删除")
	}
}

func TestCategory_DeleteEmptyRestoresParentLeaf(t *testing.T) {
	env := newTestEnv(t)

	parent, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Art"})
	child, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Prints", ParentID: parent.ID})

	if err := env.category.Delete(context.Background(), child.ID); err != nil {
		t.Fatalf("删除空分类失败: %v", err)
	}

	// 最后一个孩子删掉后父节点恢复成叶子
	refreshed, _ := env.categoryRepo.GetByID(context.Background(), parent.ID)
	if !refreshed.IsLeaf {
		t.Error("没有孩子的父节点应恢复为叶子")
	}
}

func TestCategory_SetParentRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	category, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Loop"})

	if _, err := env.category.SetParent(context.Background(), category.ID, category.ID); err == nil {
		t.Fatal("自挂应该被拒绝")
	}
}

func TestCategory_SetParentRejectsDescendant(t *testing.T) {
	env := newTestEnv(t)

	// a -> b -> c，然后试图把 a 挂到 c 下
	a, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "A"})
	b, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "B", ParentID: a.ID})
	c, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "C", ParentID: b.ID})

	if _, err := env.category.SetParent(context.Background(), a.ID, c.ID); err == nil {
		t.Fatal("挂到自己的后代应该被拒绝")
	}
}

func TestCategory_SetParentMaintainsLeafFlags(t *testing.T) {
	env := newTestEnv(t)

	oldParent, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Old"})
	newParent, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "New"})
	child, _ := env.category.Create(context.Background(), dto.CategoryReq{Name: "Movable", ParentID: oldParent.ID})

	if _, err := env.category.SetParent(context.Background(), child.ID, newParent.ID); err != nil {
		t.Fatalf("移动分类失败: %v", err)
	}

	op, _ := env.categoryRepo.GetByID(context.Background(), oldParent.ID)
	np, _ := env.categoryRepo.GetByID(context.Background(), newParent.ID)
	if !op.IsLeaf {
		t.Error("失去唯一孩子的旧父节点应恢复为叶子")
	}
	if np.IsLeaf {
		t.Error("收到孩子的新父节点不应是叶子")
	}
}

func TestCategory_MappingsReplaced(t *testing.T) {
	env := newTestEnv(t)

	size := &model.Attribute{Name: "size", Code: "size", Status: "active"}
	color := &model.Attribute{Name: "color", Code: "color", Status: "active"}
	if err := env.db.Create(size).Error; err != nil {
		t.Fatalf("创建属性失败: %v", err)
	}
	if err := env.db.Create(color).Error; err != nil {
		t.Fatalf("创建属性失败: %v", err)
	}

	category, err := env.category.Create(context.Background(), dto.CategoryReq{
		Name: "Apparel",
		AttributeMappings: []dto.MappingReq{
			{RefID: size.ID, IsMandatory: true},
		},
	})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if len(category.AttributeMappings) != 1 {
		t.Fatalf("映射条数 = %d, want 1", len(category.AttributeMappings))
	}
	if !category.AttributeMappings[0].IsMandatory {
		t.Error("is_mandatory 丢失")
	}

	// 编辑分类时重提同一个 ref_id 是常规操作，不能被旧映射行的唯一索引挡住
	updated, err := env.category.Update(context.Background(), category.ID, dto.CategoryReq{
		Name: "Apparel",
		AttributeMappings: []dto.MappingReq{
			{RefID: size.ID, IsMandatory: false},
			{RefID: color.ID, IsMandatory: true},
		},
	})
	if err != nil {
		t.Fatalf("重提相同映射的更新失败: %v", err)
	}
	if len(updated.AttributeMappings) != 2 {
		t.Fatalf("更新后映射条数 = %d, want 2", len(updated.AttributeMappings))
	}
	for _, m := range updated.AttributeMappings {
		switch m.AttributeID {
		case size.ID:
			if m.IsMandatory {
				t.Error("size 的 is_mandatory 应已改为 false")
			}
		case color.ID:
			if !m.IsMandatory {
				t.Error("color 的 is_mandatory 应为 true")
			}
		default:
			t.Errorf("多出未知映射 attribute_id = %d", m.AttributeID)
		}
	}
}
