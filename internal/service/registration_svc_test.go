package service

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
)

// ==================== 步骤载荷 ====================

func step1Payload(storeName string) json.RawMessage {
	return json.RawMessage(`{
		"store_name": "` + storeName + `",
		"business": {"type": "LLC", "name": "Acme LLC", "registration_no": "R-100"}
	}`)
}

var (
	step2Payload = json.RawMessage(`{"contacts": {"primary": {"name": "Jo", "email": "jo@example.com"}}}`)
	step3Payload = json.RawMessage(`{"warehouses": [{"name": "Main", "address_line": "1 Way", "city": "Austin", "country": "US"}]}`)
	step4Payload = json.RawMessage(`{"channels": ["web", "mobile"]}`)
	step5Payload = json.RawMessage(`{
		"agreement_signed": true,
		"payout": {"bank_name": "First Bank", "account_name": "Acme", "account_number": "12345"}
	}`)
)

func submitStep(t *testing.T, env *testEnv, userID int64, step int, data json.RawMessage) *model.Store {
	t.Helper()
	store, err := env.registration.SubmitStep(context.Background(), userID, dto.RegisterStepReq{Step: step, Data: data})
	if err != nil {
		t.Fatalf("提交第 %d 步失败: %v", step, err)
	}
	return store
}

func completeRegistration(t *testing.T, env *testEnv, userID int64, storeName string) *model.Store {
	t.Helper()
	submitStep(t, env, userID, 1, step1Payload(storeName))
	submitStep(t, env, userID, 2, step2Payload)
	submitStep(t, env, userID, 3, step3Payload)
	submitStep(t, env, userID, 4, step4Payload)
	return submitStep(t, env, userID, 5, step5Payload)
}

// ==================== 单元测试 ====================

func TestRegistration_Step1CreatesStore(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", model.RoleUser)

	store := submitStep(t, env, user.ID, 1, step1Payload("Alice Goods"))

	if store.RegistrationStep != 1 {
		t.Errorf("registration_step = %d, want 1", store.RegistrationStep)
	}
	if store.VendorStatus != model.VendorStatusPending {
		t.Errorf("vendor_status = %s, want Pending", store.VendorStatus)
	}
	// vendor_id 是 V + 5 位序列号
	if matched, _ := regexp.MatchString(`^V\d{5}$`, store.VendorID); !matched {
		t.Errorf("vendor_id = %q, 不符合 V00000 格式", store.VendorID)
	}
}

func TestRegistration_VendorIDSequential(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "u1", model.RoleUser)
	u2 := env.createUser(t, "u2", model.RoleUser)

	s1 := submitStep(t, env, u1.ID, 1, step1Payload("Store One"))
	s2 := submitStep(t, env, u2.ID, 1, step1Payload("Store Two"))

	if s1.VendorID == s2.VendorID {
		t.Errorf("两家店拿到同一个 vendor_id: %s", s1.VendorID)
	}
	if s1.VendorID != "V00001" || s2.VendorID != "V00002" {
		t.Errorf("vendor_id 序列不连续: %s, %s", s1.VendorID, s2.VendorID)
	}
}

func TestRegistration_StepRequiresPrevious(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "bob", model.RoleUser)

	// 没有店铺直接提第 2 步
	_, err := env.registration.SubmitStep(context.Background(), user.ID,
		dto.RegisterStepReq{Step: 2, Data: step2Payload})
	if err == nil {
		t.Fatal("跳步提交应该被拒绝")
	}
	if err.Error() != "please complete the previous steps first" {
		t.Errorf("错误信息 = %q", err.Error())
	}

	// 只完成第 1 步就提第 3 步
	submitStep(t, env, user.ID, 1, step1Payload("Bob Shop"))
	_, err = env.registration.SubmitStep(context.Background(), user.ID,
		dto.RegisterStepReq{Step: 3, Data: step3Payload})
	if err == nil {
		t.Fatal("跳步提交应该被拒绝")
	}
}

func TestRegistration_StepMonotone(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "carol", model.RoleUser)

	submitStep(t, env, user.ID, 1, step1Payload("Carol Crafts"))
	submitStep(t, env, user.ID, 2, step2Payload)
	submitStep(t, env, user.ID, 3, step3Payload)

	// 回头改第 1 步不应把进度拉回去
	store := submitStep(t, env, user.ID, 1, step1Payload("Carol Crafts"))
	if store.RegistrationStep != 3 {
		t.Errorf("重提第 1 步后 registration_step = %d, want 3", store.RegistrationStep)
	}
}

func TestRegistration_Step5Submits(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "dave", model.RoleUser)

	store := completeRegistration(t, env, user.ID, "Dave Depot")

	if store.RegistrationStep != model.RegistrationStepSubmitted {
		t.Errorf("registration_step = %d, want %d", store.RegistrationStep, model.RegistrationStepSubmitted)
	}
	if store.VendorStatus != model.VendorStatusPending {
		t.Errorf("vendor_status = %s, want Pending", store.VendorStatus)
	}

	// 第 5 步提交后用户升级为 vendor
	refreshed, err := env.userRepo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("查用户失败: %v", err)
	}
	if refreshed.Role != model.RoleVendor {
		t.Errorf("role = %s, want vendor", refreshed.Role)
	}
}

func TestRegistration_Step5RequiresAgreement(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "erin", model.RoleUser)

	submitStep(t, env, user.ID, 1, step1Payload("Erin Emporium"))
	submitStep(t, env, user.ID, 2, step2Payload)
	submitStep(t, env, user.ID, 3, step3Payload)
	submitStep(t, env, user.ID, 4, step4Payload)

	_, err := env.registration.SubmitStep(context.Background(), user.ID, dto.RegisterStepReq{
		Step: 5,
		Data: json.RawMessage(`{"agreement_signed": false, "payout": {"bank_name": "B", "account_name": "A", "account_number": "1"}}`),
	})
	if err == nil {
		t.Fatal("未签协议的第 5 步应该被拒绝")
	}

	// 拒绝后进度仍停在第 4 步
	store, _ := env.registration.GetCurrent(context.Background(), user.ID)
	if store.RegistrationStep != 4 {
		t.Errorf("registration_step = %d, want 4", store.RegistrationStep)
	}
}

func TestRegistration_ApprovedBlocksResubmit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "frank", model.RoleUser)

	store := completeRegistration(t, env, user.ID, "Frank Finds")
	if _, err := env.vendor.SetVendorStatus(context.Background(), store.ID, VendorActionApprove, ""); err != nil {
		t.Fatalf("审核通过失败: %v", err)
	}

	// 已通过的商家任何一步都不能再提
	_, err := env.registration.SubmitStep(context.Background(), user.ID,
		dto.RegisterStepReq{Step: 1, Data: step1Payload("Frank Finds")})
	if err == nil {
		t.Fatal("已通过商家的再提交应该被拒绝")
	}
	if err.Error() != "you already have an approved vendor account" {
		t.Errorf("错误信息 = %q", err.Error())
	}
}

func TestRegistration_RejectedAllowsRestart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "grace", model.RoleUser)

	store := completeRegistration(t, env, user.ID, "Grace Gifts")
	if _, err := env.vendor.SetVendorStatus(context.Background(), store.ID, VendorActionReject, "incomplete docs"); err != nil {
		t.Fatalf("驳回失败: %v", err)
	}

	// 驳回后允许从第 1 步重新走
	resubmitted := submitStep(t, env, user.ID, 1, step1Payload("Grace Gifts"))
	if resubmitted.ID != store.ID {
		t.Errorf("重新提交应复用原店铺记录")
	}

	// 重新走完第 5 步后状态回到 Pending 且理由清空
	final := completeRegistration(t, env, user.ID, "Grace Gifts")
	if final.VendorStatus != model.VendorStatusPending {
		t.Errorf("vendor_status = %s, want Pending", final.VendorStatus)
	}
	if final.RejectionReason != "" {
		t.Errorf("rejection_reason 应被清空, got %q", final.RejectionReason)
	}
}

func TestRegistration_StoreNameConflict(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "hank", model.RoleUser)
	u2 := env.createUser(t, "iris", model.RoleUser)

	submitStep(t, env, u1.ID, 1, step1Payload("Duplicate Name"))

	_, err := env.registration.SubmitStep(context.Background(), u2.ID,
		dto.RegisterStepReq{Step: 1, Data: step1Payload("Duplicate Name")})
	if err == nil {
		t.Fatal("重名店铺应该被拒绝")
	}
}

func TestRegistration_SnapshotAccumulates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "judy", model.RoleUser)

	submitStep(t, env, user.ID, 1, step1Payload("Judy Junction"))
	store := submitStep(t, env, user.ID, 2, step2Payload)

	var snapshots map[string]json.RawMessage
	if err := json.Unmarshal(store.RegistrationData, &snapshots); err != nil {
		t.Fatalf("解析 registration_data 失败: %v", err)
	}
	if _, ok := snapshots["step1"]; !ok {
		t.Error("缺少 step1 快照")
	}
	if _, ok := snapshots["step2"]; !ok {
		t.Error("缺少 step2 快照")
	}
}

func TestRegistration_RestartAfterDraftCleanup(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "dana", model.RoleUser)

	submitStep(t, env, user.ID, 1, step1Payload("Dana Draft"))

	// 清理任务删掉半途而废的草稿
	deleted, err := env.storeRepo.DeleteStaleDrafts(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("清理草稿失败: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("清理条数 = %d, want 1", deleted)
	}

	// 清掉的草稿不能挡住同一用户、同一店名重新入驻
	store := submitStep(t, env, user.ID, 1, step1Payload("Dana Draft"))
	if store.RegistrationStep != 1 {
		t.Errorf("registration_step = %d, want 1", store.RegistrationStep)
	}
}

func TestRegistration_RestartAfterAdminDelete(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "evan", model.RoleUser)
	store := completeRegistration(t, env, user.ID, "Evan Goods")

	if err := env.vendor.Delete(context.Background(), store.ID); err != nil {
		t.Fatalf("管理员删店失败: %v", err)
	}

	// 删店后该用户可以重新走第 1 步，店名也可复用
	fresh := submitStep(t, env, user.ID, 1, step1Payload("Evan Goods"))
	if fresh.ID == store.ID {
		t.Error("重新入驻应创建新的店铺记录")
	}
	if fresh.RegistrationStep != 1 {
		t.Errorf("registration_step = %d, want 1", fresh.RegistrationStep)
	}
}
