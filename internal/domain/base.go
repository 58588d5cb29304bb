package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel holds the surrogate identifier and timestamps shared by every
// table. Identifiers are generated in the application so the models behave
// the same on postgres and sqlite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// BeforeCreate assigns an identifier when none was provided.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OwnedModel extends BaseModel with the soft-deletion marker and the external
// identity-provider subject that created the row. Rows carrying this model are
// never physically removed by ordinary mutations; they are marked deleted and
// excluded from default queries. Join and history tables embed BaseModel
// directly and are hard-deleted through cascade rules instead.
type OwnedModel struct {
	BaseModel
	CreatedBy string         `gorm:"type:varchar(100);index;column:created_by" json:"createdBy,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
