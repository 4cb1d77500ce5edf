package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vendor_hub_v1_202608/internal/model"
)

// SequenceRepository 原子序列仓储
type SequenceRepository interface {
	// Next 取下一个序列值，单行 UPDATE 原子递增，并发下不会取到重号
	Next(ctx context.Context, name string) (int64, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 序列行不存在时先补一行
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Sequence{Name: name, Value: 0}).Error; err != nil {
			return err
		}

		// UPDATE 持有行锁，事务内读回的就是本次递增的值
		if err := tx.Model(&model.Sequence{}).Where("name = ?", name).
			Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}

		var seq model.Sequence
		if err := tx.Where("name = ?", name).First(&seq).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	return next, err
}
