// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"account_backend/internal/feature/users/domain"
	"account_backend/internal/feature/users/domain/entity"
	"account_backend/internal/feature/users/usecase"
)

// viewColumns is the fixed projection used for listings.
var viewColumns = []string{"id", "role", "username", "first_name", "last_name", "email"}

// userGorm is a GORM implementation of the UserRepository interface.
// It works with any dialector opened by platform/db.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u and sets its ID.
// A unique constraint violation is returned as *domain.DuplicateError.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return &domain.DuplicateError{Fields: r.conflicts(ctx, &u.Username, &u.Email, 0)}
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by primary key.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email address.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns one page of users ordered by id, plus the total row count.
// The password column is never selected.
func (r *userGorm) List(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	if err := r.db.WithContext(ctx).
		Select(viewColumns).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies the supplied fields of ch to the user and returns the
// stored row. An empty change set only verifies that the user exists.
func (r *userGorm) Update(ctx context.Context, id uint, ch entity.Changes) (*entity.User, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if ch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	err := r.db.WithContext(ctx).
		Model(&entity.User{ID: id}).
		Updates(changeColumns(ch)).Error
	if err != nil {
		if isDuplicateKey(err) {
			return nil, &domain.DuplicateError{Fields: r.conflicts(ctx, ch.Username, ch.Email, id)}
		}
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the user row.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func changeColumns(ch entity.Changes) map[string]any {
	cols := make(map[string]any, 5)
	if ch.Username != nil {
		cols["username"] = *ch.Username
	}
	if ch.FirstName != nil {
		cols["first_name"] = *ch.FirstName
	}
	if ch.LastName != nil {
		cols["last_name"] = *ch.LastName
	}
	if ch.Email != nil {
		cols["email"] = *ch.Email
	}
	if ch.PasswordHash != nil {
		cols["password"] = *ch.PasswordHash
	}
	return cols
}

// conflicts names the unique fields already held by a user other than
// excludeID. It runs after the store rejected the write, so it only
// describes the violation and never decides it.
func (r *userGorm) conflicts(ctx context.Context, username, email *string, excludeID uint) []string {
	var fields []string
	check := func(column string, value *string) {
		if value == nil {
			return
		}
		q := r.db.WithContext(ctx).Model(&entity.User{}).Where(column+" = ?", *value)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var n int64
		if err := q.Count(&n).Error; err == nil && n > 0 {
			fields = append(fields, column)
		}
	}
	check("username", username)
	check("email", email)
	return fields
}

// isDuplicateKey recognizes unique violations from every supported driver,
// whether or not GORM error translation is enabled.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062: duplicate entry for unique key
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	// PostgreSQL SQLSTATE 23505: unique_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

// RoleOf returns the current role of the user, read on every authenticated
// request so role changes apply to existing tokens.
func (r *userGorm) RoleOf(ctx context.Context, id uint) (string, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Select("id", "role").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	return u.Role, nil
}
