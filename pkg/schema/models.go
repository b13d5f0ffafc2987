// Package schema provides the staging table model for stageload.
// The column order of StagingRow must match the column order of the
// CSV files loaded into the table.
package schema

import (
	"time"
)

// TableName is the name of the staging table.
const TableName = "stage_tbl"

// DDLGenerator defines how Go models generate MySQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// DropDDL returns the DROP TABLE statement for this model.
	DropDDL() string

	// TableName returns the MySQL table name for this model.
	TableName() string
}

// StagingRow is one row of the staging table. The table is dropped and
// recreated on every load, rows are never updated individually.
//
// Fields are pointers because LOAD DATA ... IGNORE leaves missing
// trailing fields as NULL.
type StagingRow struct {
	// ID is an unconstrained integer identifier from the source.
	ID *int32 `db:"id" ddl:"INT" gorm:"column:id" json:"id"`

	// CKey is the customer key.
	CKey *string `db:"ckey" ddl:"VARCHAR(50)" gorm:"column:ckey" json:"ckey"`

	FirstName *string `db:"first_name" ddl:"VARCHAR(100)" gorm:"column:first_name" json:"first_name"`

	LastName *string `db:"last_name" ddl:"VARCHAR(100)" gorm:"column:last_name" json:"last_name"`

	// MatStatus is the marital status.
	MatStatus *string `db:"mat_status" ddl:"VARCHAR(50)" gorm:"column:mat_status" json:"mat_status"`

	Gender *string `db:"gender" ddl:"VARCHAR(20)" gorm:"column:gender" json:"gender"`

	CreateDate *time.Time `db:"create_date" ddl:"DATE" gorm:"column:create_date;type:date" json:"create_date"`
}
