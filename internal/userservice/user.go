package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webblog/api/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

// Both schemas under migrations/ name the unique keys user_username_key and
// user_email_key. MySQL reports a violated key by its name, so a MySQL table
// created without those names falls back to the column name.
const (
	emailConstraint = "user_email_key"
	emailColumn     = "email"
)

func newUserModel(db *common.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) table() string {
	return m.db.Quote("user")
}

func (m *UserModel) exists(ctx context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)`, m.table(), column)

	var exists bool
	err := m.db.QueryRowContext(ctx, m.db.Rebind(query), value).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *UserModel) existsByUsername(ctx context.Context, username string) (bool, error) {
	return m.exists(ctx, "username", username)
}

func (m *UserModel) existsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists(ctx, "email", email)
}

// insert stores the user and sets u.ID. The unique constraints decide which
// of two concurrent signups wins; the loser gets ErrDuplicateUsername or ErrDuplicateEmail.
func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (username, email, password) VALUES (?, ?, ?)`, m.table())

	id, err := m.db.InsertID(ctx, query, "id", u.Username, u.Email, string(u.Password.hash))
	if err != nil {
		return duplicateUserError(err)
	}

	u.ID = id
	return nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT id, username, email, password FROM %s WHERE username = ?`, m.table())

	var u User

	err := m.db.QueryRowContext(ctx, m.db.Rebind(query), username).Scan(&u.ID, &u.Username, &u.Email, &u.Password.hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// duplicateUserError maps a unique violation to the field that caused it.
func duplicateUserError(err error) error {
	constraint, ok := common.UniqueViolation(err)
	switch {
	case ok && (constraint == emailConstraint || constraint == emailColumn):
		return ErrDuplicateEmail
	case ok:
		// the username key is the only other unique key on the table
		return ErrDuplicateUsername
	default:
		return err
	}
}
