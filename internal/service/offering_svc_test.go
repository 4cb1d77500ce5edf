package service

import (
	"context"
	"errors"
	"testing"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/pkg/errs"
)

// approvedVendor 走完入驻并审核通过，返回店铺归属用户与店铺
func approvedVendor(t *testing.T, env *testEnv, username, storeName string) (*model.User, *model.Store) {
	t.Helper()
	user := env.createUser(t, username, model.RoleUser)
	store := completeRegistration(t, env, user.ID, storeName)
	if _, err := env.vendor.SetVendorStatus(context.Background(), store.ID, VendorActionApprove, ""); err != nil {
		t.Fatalf("审核通过失败: %v", err)
	}
	store, err := env.storeRepo.GetByID(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("查店铺失败: %v", err)
	}
	return user, store
}

func TestOffering_LinkExistingProduct(t *testing.T) {
	env := newTestEnv(t)
	user, store := approvedVendor(t, env, "vendor1", "Vendor One")
	category := env.createLeafCategory(t, "books")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Go in Practice", CategoryID: category.ID, Status: model.ProductStatusActive,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	_, err = env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		MasterProductID: product.ID,
		PriceAmount:     2599,
		StockQuantity:   10,
	}, nil, "")
	if err != nil {
		t.Fatalf("挂接失败: %v", err)
	}

	offering, err := env.offeringRepo.GetByProductAndStore(context.Background(), product.ID, store.ID)
	if err != nil {
		t.Fatalf("查报价失败: %v", err)
	}
	if offering.PriceAmount != 2599 {
		t.Errorf("price_amount = %d, want 2599", offering.PriceAmount)
	}
	if offering.CurrencyCode != "USD" {
		t.Errorf("currency_code = %s, want USD 默认值", offering.CurrencyCode)
	}
}

func TestOffering_DoubleLinkConflict(t *testing.T) {
	env := newTestEnv(t)
	user, _ := approvedVendor(t, env, "vendor2", "Vendor Two")
	category := env.createLeafCategory(t, "games")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Chess Set", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	req := dto.VendorProductReq{MasterProductID: product.ID, PriceAmount: 1000}
	if _, err := env.offering.Submit(context.Background(), user.ID, req, nil, ""); err != nil {
		t.Fatalf("首次挂接失败: %v", err)
	}

	// 同一商品二次挂接是冲突
	_, err = env.offering.Submit(context.Background(), user.ID, req, nil, "")
	if err == nil {
		t.Fatal("重复挂接应该被拒绝")
	}
	var conflict *errs.Conflict
	if !errors.As(err, &conflict) {
		t.Errorf("错误类型应为 Conflict, got %T", err)
	}
}

func TestOffering_LinkMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	user, _ := approvedVendor(t, env, "vendor3", "Vendor Three")

	_, err := env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		MasterProductID: 99999,
		PriceAmount:     500,
	}, nil, "")
	if err == nil {
		t.Fatal("挂接不存在的商品应该报 404")
	}
	var nf *errs.NotFound
	if !errors.As(err, &nf) {
		t.Errorf("错误类型应为 NotFound, got %T", err)
	}
}

func TestOffering_NewProductRequest(t *testing.T) {
	env := newTestEnv(t)
	user, store := approvedVendor(t, env, "vendor4", "Vendor Four")
	category := env.createLeafCategory(t, "plants")

	product, err := env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		PriceAmount:   1500,
		StockQuantity: 3,
		Name:          "Bonsai Tree",
		CategoryID:    category.ID,
	}, nil, "")
	if err != nil {
		t.Fatalf("新品请求失败: %v", err)
	}

	// 新品请求落为 inactive 等审核
	if product.Status != model.ProductStatusInactive {
		t.Errorf("status = %s, want inactive", product.Status)
	}

	// 自带唯一一条本店报价
	offerings, err := env.offeringRepo.ListByStore(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("查报价失败: %v", err)
	}
	if len(offerings) != 1 {
		t.Fatalf("报价条数 = %d, want 1", len(offerings))
	}
	if offerings[0].MasterProductID != product.ID {
		t.Errorf("报价未挂到新品上")
	}
}

func TestOffering_RequiresApprovedStore(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "pending-vendor", model.RoleUser)
	completeRegistration(t, env, user.ID, "Pending Shop")

	// 待审核商家不能提交商品
	_, err := env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		MasterProductID: 1,
		PriceAmount:     100,
	}, nil, "")
	if err == nil {
		t.Fatal("未审核通过的商家应该被拒绝")
	}
	var forbidden *errs.Forbidden
	if !errors.As(err, &forbidden) {
		t.Errorf("错误类型应为 Forbidden, got %T", err)
	}
}

func TestOffering_NewProductValidatesCategory(t *testing.T) {
	env := newTestEnv(t)
	user, _ := approvedVendor(t, env, "vendor5", "Vendor Five")

	_, err := env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		PriceAmount: 900,
		Name:        "Mystery Item",
		CategoryID:  424242,
	}, nil, "")
	if err == nil {
		t.Fatal("分类不存在的新品请求应该被拒绝")
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestOffering_UpdatePriceAndStock(t *testing.T) {
	env := newTestEnv(t)
	user, store := approvedVendor(t, env, "vendor6", "Vendor Six")
	category := env.createLeafCategory(t, "lamps")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Desk Lamp", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if _, err := env.offering.Submit(context.Background(), user.ID, dto.VendorProductReq{
		MasterProductID: product.ID, PriceAmount: 3000, StockQuantity: 5,
	}, nil, ""); err != nil {
		t.Fatalf("挂接失败: %v", err)
	}
	offering, err := env.offeringRepo.GetByProductAndStore(context.Background(), product.ID, store.ID)
	if err != nil {
		t.Fatalf("查报价失败: %v", err)
	}

	updated, err := env.offering.Update(context.Background(), user.ID, offering.ID, dto.OfferingUpdateReq{
		PriceAmount:   2500,
		StockQuantity: intPtr(0),
		IsActive:      boolPtr(false),
	})
	if err != nil {
		t.Fatalf("更新报价失败: %v", err)
	}
	if updated.PriceAmount != 2500 {
		t.Errorf("price_amount = %d, want 2500", updated.PriceAmount)
	}
	// 库存可以改成 0（指针字段区分"不改"和"清零"）
	if updated.StockQuantity != 0 {
		t.Errorf("stock_quantity = %d, want 0", updated.StockQuantity)
	}
	if updated.IsActive {
		t.Error("is_active 应已下架")
	}
}

func TestOffering_UpdateOthersOfferingRejected(t *testing.T) {
	env := newTestEnv(t)
	owner, store := approvedVendor(t, env, "vendor7", "Vendor Seven")
	intruder, _ := approvedVendor(t, env, "vendor8", "Vendor Eight")
	category := env.createLeafCategory(t, "mugs")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Clay Mug", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	if _, err := env.offering.Submit(context.Background(), owner.ID, dto.VendorProductReq{
		MasterProductID: product.ID, PriceAmount: 800,
	}, nil, ""); err != nil {
		t.Fatalf("挂接失败: %v", err)
	}
	offering, _ := env.offeringRepo.GetByProductAndStore(context.Background(), product.ID, store.ID)

	// 别家的报价按不存在处理
	_, err = env.offering.Update(context.Background(), intruder.ID, offering.ID, dto.OfferingUpdateReq{
		PriceAmount: 1,
	})
	if err == nil {
		t.Fatal("改别家报价应该被拒绝")
	}
	var nf *errs.NotFound
	if !errors.As(err, &nf) {
		t.Errorf("错误类型应为 NotFound, got %T", err)
	}
}

func TestOffering_DeleteAllowsRelink(t *testing.T) {
	env := newTestEnv(t)
	user, store := approvedVendor(t, env, "vendor9", "Vendor Nine")
	category := env.createLeafCategory(t, "vases")

	product, err := env.product.Create(context.Background(), dto.ProductCreateReq{
		Name: "Glass Vase", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	req := dto.VendorProductReq{MasterProductID: product.ID, PriceAmount: 1200}
	if _, err := env.offering.Submit(context.Background(), user.ID, req, nil, ""); err != nil {
		t.Fatalf("挂接失败: %v", err)
	}
	offering, _ := env.offeringRepo.GetByProductAndStore(context.Background(), product.ID, store.ID)

	if err := env.offering.Delete(context.Background(), user.ID, offering.ID); err != nil {
		t.Fatalf("删除报价失败: %v", err)
	}

	// 删掉的报价不能占住 (master_product_id, store_id) 唯一索引，重新挂接要成功
	if _, err := env.offering.Submit(context.Background(), user.ID, req, nil, ""); err != nil {
		t.Fatalf("删除后重新挂接失败: %v", err)
	}
}
