package repository

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// AdminRepository describes persistence operations with console accounts.
type AdminRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Admin, error)
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
}
