package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"vendor_hub_v1_202608/internal/repository"
)

// ReconcileTask 分类商品计数校准任务
// product_count 是写路径维护的冗余计数，任何一次失败的增减都会造成漂移，
// 这里定期用实表计数覆盖
type ReconcileTask struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cron         *cron.Cron
	spec         string
	logger       *zap.Logger
}

func NewReconcileTask(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	spec string,
	logger *zap.Logger,
) *ReconcileTask {
	return &ReconcileTask{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cron:         cron.New(cron.WithSeconds()),
		spec:         spec,
		logger:       logger,
	}
}

// Start 启动定时任务
func (t *ReconcileTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	})
	if err != nil {
		t.logger.Error("计数校准任务注册失败", zap.String("spec", t.spec), zap.Error(err))
		return
	}
	t.cron.Start()
	t.logger.Info("计数校准任务已启动", zap.String("spec", t.spec))
}

// Stop 停止任务，等在途执行结束
func (t *ReconcileTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("计数校准任务已停止")
}

// RunOnce 全量校准一轮
func (t *ReconcileTask) RunOnce(ctx context.Context) {
	categories, err := t.categoryRepo.ListAll(ctx)
	if err != nil {
		t.logger.Error("读取分类列表失败", zap.Error(err))
		return
	}

	var fixed int
	for i := range categories {
		c := &categories[i]
		live, err := t.productRepo.CountByCategory(ctx, c.ID)
		if err != nil {
			t.logger.Warn("统计分类商品数失败", zap.Int64("category_id", c.ID), zap.Error(err))
			continue
		}
		if int64(c.ProductCount) == live {
			continue
		}
		if err := t.categoryRepo.SetProductCount(ctx, c.ID, live); err != nil {
			t.logger.Warn("回写分类计数失败", zap.Int64("category_id", c.ID), zap.Error(err))
			continue
		}
		fixed++
		t.logger.Info("分类计数已校准",
			zap.Int64("category_id", c.ID),
			zap.Int("stored", c.ProductCount),
			zap.Int64("live", live))
	}
	t.logger.Info("计数校准完成", zap.Int("categories", len(categories)), zap.Int("fixed", fixed))
}
