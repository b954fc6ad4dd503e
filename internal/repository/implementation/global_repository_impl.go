package implementation

import (
	"context"
	"errors"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/mapper"
	"agency-site-be/internal/model"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GlobalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GlobalMapper
}

func NewGlobalRepository(db *gorm.DB) contract.GlobalRepository {
	return &GlobalRepositoryImpl{
		db:     db,
		mapper: mapper.NewGlobalMapper(),
	}
}

func (r *GlobalRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.Global, error) {
	var m model.Global
	query := specification.ByKey{Key: key}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GlobalRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Global, error) {
	var models []*model.Global
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GlobalRepositoryImpl) Save(ctx context.Context, global *entity.Global) error {
	m := r.mapper.ToModel(global)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*global = *r.mapper.ToEntity(m)
	return nil
}
