package repository

import (
	"context"
	"fmt"

	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sequence keys for the document-number generators
const (
	SequenceTickets    = "tickets"
	SequenceQuotations = "quotations"
)

// NumberSequenceRepository hands out monotonically increasing document
// numbers. Tickets and quotations draw from separate sequences.
type NumberSequenceRepository struct {
	db *gorm.DB
}

func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// Next atomically returns the next number for a sequence. The row is created
// on first use and locked for the duration of the transaction so concurrent
// callers never see the same value.
func (r *NumberSequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	var issued int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.NumberSequence
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			First(&seq)

		if result.Error == gorm.ErrRecordNotFound {
			seq = domain.NumberSequence{Key: key, NextValue: 2}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create number sequence: %w", err)
			}
			issued = 1
			return nil
		}
		if result.Error != nil {
			return fmt.Errorf("failed to get number sequence: %w", result.Error)
		}

		issued = seq.NextValue
		if err := tx.Model(&seq).Update("next_value", issued+1).Error; err != nil {
			return fmt.Errorf("failed to advance number sequence: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, translateError(err)
	}
	return issued, nil
}

// Current returns the next unissued value without advancing the sequence.
// Returns 1 when the sequence has never issued a number.
func (r *NumberSequenceRepository) Current(ctx context.Context, key string) (int64, error) {
	var seq domain.NumberSequence
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&seq)
	if result.Error == gorm.ErrRecordNotFound {
		return 1, nil
	}
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return seq.NextValue, nil
}
