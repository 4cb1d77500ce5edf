package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"

	"go.uber.org/zap"
)

// createCategoryWithMandatoryAttr 建叶子分类并挂一个必填属性映射
func createCategoryWithMandatoryAttr(t *testing.T, env *testEnv, name string) (*model.Category, *model.Attribute) {
	t.Helper()
	attr := &model.Attribute{Name: name + "-color", Code: name + "-color", Status: "active"}
	if err := env.db.Create(attr).Error; err != nil {
		t.Fatalf("创建属性失败: %v", err)
	}
	category := env.createLeafCategory(t, name)
	mapping := &model.CategoryAttributeMapping{
		CategoryID:  category.ID,
		AttributeID: attr.ID,
		IsMandatory: true,
	}
	if err := env.db.Create(mapping).Error; err != nil {
		t.Fatalf("创建映射失败: %v", err)
	}
	return category, attr
}

func TestProduct_CreateAssignsCode(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "gadgets")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name:       "Wireless Mouse",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if matched, _ := regexp.MatchString(`^UPID-\d{6}$`, product.MasterProductCode); !matched {
		t.Errorf("master_product_code = %q, 不符合 UPID-000000 格式", product.MasterProductCode)
	}
	if product.Slug != "wireless-mouse" {
		t.Errorf("slug = %q, want wireless-mouse", product.Slug)
	}

	// 分类计数同步递增
	refreshed, _ := env.categoryRepo.GetByID(context.Background(), category.ID)
	if refreshed.ProductCount != 1 {
		t.Errorf("product_count = %d, want 1", refreshed.ProductCount)
	}
}

func TestProduct_SlugCollisionGetsSuffix(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "lamps")

	first, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Desk Lamp", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	second, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Desk Lamp", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建同名商品失败: %v", err)
	}

	if first.Slug == second.Slug {
		t.Errorf("slug 冲突未处理: %q", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, "desk-lamp-") {
		t.Errorf("second slug = %q, 应带时间戳后缀", second.Slug)
	}
}

func TestProduct_NonLeafCategoryRejected(t *testing.T) {
	env := newTestEnv(t)
	parent := &model.Category{Name: "root", Slug: "root", IsLeaf: false, Status: "active"}
	if err := env.db.Create(parent).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	_, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Ghost Item", CategoryID: parent.ID,
	})
	if err == nil {
		t.Fatal("非叶子分类建品应该被拒绝")
	}
	if err.Error() != "products can only be created under a leaf category" {
		t.Errorf("错误信息 = %q", err.Error())
	}

	// 校验失败不落任何行
	var count int64
	env.db.Model(&model.MasterProduct{}).Count(&count)
	if count != 0 {
		t.Errorf("商品表应为空, got %d", count)
	}
}

func TestProduct_MissingMandatoryAttribute(t *testing.T) {
	env := newTestEnv(t)
	category, attr := createCategoryWithMandatoryAttr(t, env, "shoes")

	// 不带必填属性
	_, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Running Shoe", CategoryID: category.ID,
	})
	if err == nil {
		t.Fatal("缺必填属性应该被拒绝")
	}
	if !strings.Contains(err.Error(), attr.Name) {
		t.Errorf("开关打开时错误应点名缺失属性, got %q", err.Error())
	}

	// 带上之后创建成功
	_, err = env.product.Create(context.Background(), dto.ProductCreateReq{
		Name:       "Running Shoe",
		CategoryID: category.ID,
		AttributeValues: []dto.AttributeValueReq{
			{AttributeID: attr.ID, Value: "red"},
		},
	})
	if err != nil {
		t.Fatalf("补全必填属性后仍失败: %v", err)
	}
}

func TestProduct_MissingMandatoryAttributeGenericMessage(t *testing.T) {
	env := newTestEnv(t)
	category, attr := createCategoryWithMandatoryAttr(t, env, "hats")

	// 关掉点名开关后错误信息不携带属性名
	svc := NewProductService(env.productRepo, env.categoryRepo, env.seqRepo, nil,
		config.CatalogConfig{ExposeMissingMapping: false}, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.ProductCreateReq{
		Name: "Sun Hat", CategoryID: category.ID,
	})
	if err == nil {
		t.Fatal("缺必填属性应该被拒绝")
	}
	if strings.Contains(err.Error(), attr.Name) {
		t.Errorf("开关关闭时错误不应点名属性, got %q", err.Error())
	}
}

func TestProduct_SinglePrimaryMedia(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "bags")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name:       "Tote Bag",
		CategoryID: category.ID,
		Media: []dto.MediaReq{
			{URL: "https://cdn/a.jpg", IsPrimary: true},
			{URL: "https://cdn/b.jpg", IsPrimary: true},
			{URL: "https://cdn/c.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	var primaries int64
	env.db.Model(&model.ProductMedia{}).
		Where("product_id = ? AND is_primary = ?", product.ID, true).Count(&primaries)
	if primaries != 1 {
		t.Errorf("主图数量 = %d, want 1", primaries)
	}
}

func TestProduct_DefaultPrimaryMedia(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "mugs")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name:       "Coffee Mug",
		CategoryID: category.ID,
		Media: []dto.MediaReq{
			{URL: "https://cdn/x.jpg"},
			{URL: "https://cdn/y.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 都没标主图时第一张兜底
	var first model.ProductMedia
	env.db.Where("product_id = ? AND url = ?", product.ID, "https://cdn/x.jpg").First(&first)
	if !first.IsPrimary {
		t.Error("第一张图应兜底成为主图")
	}
}

func TestProduct_DeleteDecrementsCount(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "pens")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Fountain Pen", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if err := env.product.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("删除商品失败: %v", err)
	}

	refreshed, _ := env.categoryRepo.GetByID(context.Background(), category.ID)
	if refreshed.ProductCount != 0 {
		t.Errorf("product_count = %d, want 0", refreshed.ProductCount)
	}

	if _, err := env.product.Get(context.Background(), product.ID); err == nil {
		t.Error("删除后的商品不应再查到")
	}
}

func TestProduct_ListFilterByStatus(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "toys")

	for _, tc := range []struct {
		name   string
		status string
	}{
		{"Active Toy", model.ProductStatusActive},
		{"Hidden Toy", model.ProductStatusInactive},
	} {
		if _, err := env.product.Create(context.Background(), dto.ProductCreateReq{
			Name: tc.name, CategoryID: category.ID, Status: tc.status,
		}); err != nil {
			t.Fatalf("创建商品失败: %v", err)
		}
	}

	products, total, err := env.product.List(context.Background(), repository.ProductFilter{
		Status: model.ProductStatusActive,
	})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", total, len(products))
	}
	if products[0].Name != "Active Toy" {
		t.Errorf("name = %s, want Active Toy", products[0].Name)
	}
}

func TestProduct_RecreateAfterDelete(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "tools")

	first, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Widget Pro", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if first.Slug != "widget-pro" {
		t.Fatalf("slug = %q, want widget-pro", first.Slug)
	}

	if err := env.product.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("删除商品失败: %v", err)
	}

	// 软删行仍占住 slug 唯一索引，重建同名商品必须走时间戳后缀而不是撞库
	second, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Widget Pro", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("删除后重建同名商品失败: %v", err)
	}
	if matched, _ := regexp.MatchString(`^widget-pro-\d+$`, second.Slug); !matched {
		t.Errorf("重建 slug = %q, 应带时间戳后缀", second.Slug)
	}
}

func TestProduct_DeleteMedia(t *testing.T) {
	env := newTestEnv(t)
	category := env.createLeafCategory(t, "frames")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Oak Frame", CategoryID: category.ID,
		Media: []dto.MediaReq{
			{URL: "https://cdn.example.com/a.jpg", IsPrimary: true},
			{URL: "https://cdn.example.com/b.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if len(product.Media) != 2 {
		t.Fatalf("媒体条数 = %d, want 2", len(product.Media))
	}

	if err := env.product.DeleteMedia(context.Background(), product.ID, product.Media[1].ID); err != nil {
		t.Fatalf("删除媒体失败: %v", err)
	}

	reloaded, err := env.product.Get(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("查商品失败: %v", err)
	}
	if len(reloaded.Media) != 1 {
		t.Errorf("删除后媒体条数 = %d, want 1", len(reloaded.Media))
	}

	// 不存在的媒体 ID 报 404
	if err := env.product.DeleteMedia(context.Background(), product.ID, 99999); err == nil {
		t.Error("删除不存在的媒体应该报错")
	}
}
