package blogservice

import (
	"github.com/webblog/api/internal/common"
)

const maxNameBytes = 255

func validateName(v *common.Validator, name string) {
	v.Required(name, "blog_name")
	v.MaxBytes(name, maxNameBytes, "blog_name")
}

func validateContent(v *common.Validator, content string) {
	v.Required(content, "blog_content")
}

func validateAuthor(v *common.Validator, author string) {
	v.Required(author, "author_name")
	v.MaxBytes(author, maxNameBytes, "author_name")
}
