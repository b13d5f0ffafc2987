// Package iopreview reads the staging table back through GORM.
package iopreview

import (
	"context"

	"github.com/gnames/stageload/pkg/db"
	"github.com/gnames/stageload/pkg/lifecycle"
	"github.com/gnames/stageload/pkg/schema"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type previewer struct {
	operator db.Operator
}

// New creates a Previewer that uses the connection of op.
func New(op db.Operator) lifecycle.Previewer {
	return &previewer{operator: op}
}

// Preview counts the rows of the staging table and returns the first
// limit of them in storage order.
func (p *previewer) Preview(
	ctx context.Context,
	limit int,
) (int64, []schema.StagingRow, error) {
	sqlDB := p.operator.DB()
	if sqlDB == nil {
		return 0, nil, NotConnectedError()
	}

	gormDB, err := gorm.Open(
		gormmysql.New(gormmysql.Config{
			Conn:                      sqlDB,
			SkipInitializeWithVersion: true,
		}),
		&gorm.Config{
			Logger:               logger.Default.LogMode(logger.Silent),
			DisableAutomaticPing: true,
		},
	)
	if err != nil {
		return 0, nil, PreviewError(err)
	}
	gormDB = gormDB.WithContext(ctx)

	var total int64
	err = gormDB.Model(&schema.StagingRow{}).Count(&total).Error
	if err != nil {
		return 0, nil, PreviewError(err)
	}

	if limit <= 0 || total == 0 {
		return total, nil, nil
	}

	var rows []schema.StagingRow
	if err = gormDB.Limit(limit).Find(&rows).Error; err != nil {
		return 0, nil, PreviewError(err)
	}
	return total, rows, nil
}
