package blogservice

import (
	"time"

	"github.com/webblog/api/internal/common"
)

type Blog struct {
	ID         int       `json:"id_blog"`
	Name       string    `json:"blog_name"`
	Content    string    `json:"blog_content"`
	AuthorName string    `json:"author_name"`
	PostTime   time.Time `json:"post_time"`
}

type BlogModel struct {
	db *common.DB
}

type BlogService struct {
	m *BlogModel
}

// Page is one page of blogs together with its pagination block.
type Page struct {
	Blogs      []Blog     `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}
