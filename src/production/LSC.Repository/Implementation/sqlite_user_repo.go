package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
	interfaces "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Repository/Interfaces"
	"gorm.io/gorm"
)

type SQLiteUserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewSQLiteUserRepository(db *gorm.DB, timeout time.Duration) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, timeout: timeout}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user *lscmodels.User) (*lscmodels.User, error) {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return nil, interfaces.ErrDuplicate
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := userRow{
		ID:           uuid.NewString(),
		FullName:     user.FullName,
		Email:        lscmodels.NormalizeEmail(user.Email),
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toModel(), nil
}

func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*lscmodels.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []userRow
	if err := r.db.WithContext(ctx).Where("email = ?", lscmodels.NormalizeEmail(email)).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(rows) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return rows[0].toModel(), nil
}
