package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"vendor_hub_v1_202608/internal/repository"
)

// CleanupTask 过期注册草稿清理任务
// 只清未走到第 5 步且长期没动静的 Pending 草稿，已提交待审核的不碰
type CleanupTask struct {
	storeRepo repository.StoreRepository
	cron      *cron.Cron
	spec      string
	afterDays int
	logger    *zap.Logger
}

func NewCleanupTask(
	storeRepo repository.StoreRepository,
	spec string,
	afterDays int,
	logger *zap.Logger,
) *CleanupTask {
	return &CleanupTask{
		storeRepo: storeRepo,
		cron:      cron.New(cron.WithSeconds()),
		spec:      spec,
		afterDays: afterDays,
		logger:    logger,
	}
}

// Start 启动定时任务
func (t *CleanupTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	})
	if err != nil {
		t.logger.Error("草稿清理任务注册失败", zap.String("spec", t.spec), zap.Error(err))
		return
	}
	t.cron.Start()
	t.logger.Info("草稿清理任务已启动",
		zap.String("spec", t.spec), zap.Int("after_days", t.afterDays))
}

// Stop 停止任务
func (t *CleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("草稿清理任务已停止")
}

// RunOnce 清理一轮
func (t *CleanupTask) RunOnce(ctx context.Context) {
	before := time.Now().AddDate(0, 0, -t.afterDays)
	deleted, err := t.storeRepo.DeleteStaleDrafts(ctx, before)
	if err != nil {
		t.logger.Error("清理过期草稿失败", zap.Error(err))
		return
	}
	if deleted > 0 {
		t.logger.Info("过期注册草稿已清理",
			zap.Int64("deleted", deleted), zap.Time("before", before))
	}
}
