package userservice

import (
	"github.com/webblog/api/internal/common"
)

const maxFieldBytes = 255

func validateUsername(v *common.Validator, username string) {
	v.Required(username, "username")
	v.MaxBytes(username, maxFieldBytes, "username")
}

func validateEmail(v *common.Validator, email string) {
	v.Required(email, "email")
	v.MaxBytes(email, maxFieldBytes, "email")
}

func validatePassword(v *common.Validator, password string) {
	v.Required(password, "password")
	v.MaxBytes(password, maxPasswordBytes, "password")
}
