package userservice

import (
	"log/slog"

	"github.com/webblog/api/internal/common"
)

type UserService struct {
	m      *UserModel
	mb     common.MessageProducer
	logger *slog.Logger
}

type UserModel struct {
	db *common.DB
}

type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"-"`
	Password Password `json:"-"`
}

// Password holds only the digest; the plaintext is never kept.
type Password struct {
	hash []byte
}
