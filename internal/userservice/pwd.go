package userservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost = 10

	// bcrypt only looks at the first 72 bytes and newer versions refuse longer input.
	maxPasswordBytes = 72
)

// set hashes pwd with a fresh salt, so two calls never produce the same digest.
func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}

	p.hash = hash

	return nil
}

// compare returns false for a wrong password and an error only when the stored digest is malformed.
func (p *Password) compare(pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(pwd))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}
