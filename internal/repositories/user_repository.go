package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"coldstore/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// UserCredentials is the login view of a users row.
type UserCredentials struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         domain.Role
	Active       bool
}

type UserRepository struct {
	conn DBProvider
}

func NewUserRepository(conn DBProvider) *UserRepository {
	return &UserRepository{conn: conn}
}

// FindByEmail returns domain.NotFoundError when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (UserCredentials, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return UserCredentials{}, err
	}
	query, args, err := builder.
		Select("id", "name", "email", "password_hash", "role", "is_active").
		From("users").
		Where(sq.Eq{"LOWER(email)": strings.ToLower(strings.TrimSpace(email))}).
		Limit(1).
		ToSql()
	if err != nil {
		return UserCredentials{}, fmt.Errorf("build user query: %w", err)
	}

	var (
		u    UserCredentials
		role string
	)
	err = db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return UserCredentials{}, domain.NotFoundError{Resource: "User", Err: err}
	}
	if err != nil {
		return UserCredentials{}, fmt.Errorf("query user: %w", err)
	}
	u.Role = domain.ParseRole(role)
	return u, nil
}
