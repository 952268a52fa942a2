package userservice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/webblog/api/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

// NewUserService wires the user model to db. mb may be nil, in which case no
// user.created events are published.
func NewUserService(db *common.DB, mb common.MessageProducer, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		logger: logger,
	}
}

// SignUp checks the username, then the email, then hashes the password and
// inserts the user. The checks give the common case a precise error; the
// insert's unique constraints settle races between concurrent signups.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.existsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	exists, err = s.m.existsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	u := User{
		Username: username,
		Email:    email,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.insert(ctx, &u); err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, &u)

	return &u, nil
}

// publishUserCreated is best effort: the user row is already committed, so a
// broker failure is logged and otherwise ignored.
func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	if s.mb == nil {
		return
	}

	msg, err := common.UserCreatedEvent{Username: u.Username, Email: u.Email}.Marshal()
	if err == nil {
		err = s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
	}
	if err != nil && s.logger != nil {
		s.logger.Error("could not publish user created event", slog.String("username", u.Username), slog.String("error", err.Error()))
	}
}

// Login looks the user up by username and verifies the password.
func (s *UserService) Login(ctx context.Context, username, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	v.Required(password, "password")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.m.getByUsername(ctx, username)
}
