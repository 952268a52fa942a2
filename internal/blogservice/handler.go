package blogservice

import (
	"context"

	"github.com/webblog/api/internal/common"
)

func NewBlogService(db *common.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Name       string `json:"blog_name"`
	Content    string `json:"blog_content"`
	AuthorName string `json:"author_name"`
}

type UpdateBlogRequest struct {
	Name    string `json:"blog_name"`
	Content string `json:"blog_content"`
}

// CreateBlog inserts a blog and returns its id. The name check answers the
// common case; the unique constraint on blog_name decides concurrent creates.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (int, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateContent(v, req.Content)
	validateAuthor(v, req.AuthorName)
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	exists, err := s.m.existsByName(ctx, req.Name, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateBlogName
	}

	return s.m.insert(ctx, req.Name, req.Content, req.AuthorName)
}

// GetBlogs returns one page of all blogs, newest first.
func (s *BlogService) GetBlogs(ctx context.Context, p PageParams) (*Page, error) {
	total, err := s.m.count(ctx)
	if err != nil {
		return nil, err
	}

	// a page past the end is empty without asking the database
	blogs := []Blog{}
	if p.Offset() < total {
		blogs, err = s.m.listPage(ctx, p.Limit, p.Offset())
		if err != nil {
			return nil, err
		}
	}

	return &Page{Blogs: blogs, Pagination: p.pagination(total)}, nil
}

// GetBlogsByAuthor returns one page of the blogs written by author. An
// unknown author yields an empty page.
func (s *BlogService) GetBlogsByAuthor(ctx context.Context, author string, p PageParams) (*Page, error) {
	total, err := s.m.countByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	blogs := []Blog{}
	if p.Offset() < total {
		blogs, err = s.m.listPageByAuthor(ctx, author, p.Limit, p.Offset())
		if err != nil {
			return nil, err
		}
	}

	return &Page{Blogs: blogs, Pagination: p.pagination(total)}, nil
}

// GetBlogByID is used by tests and callers that need the stored row.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	return s.m.getByID(ctx, id)
}

// UpdateBlog renames and rewrites a blog. Keeping the current name is not a conflict.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	v := common.NewValidator()
	validateName(v, req.Name)
	validateContent(v, req.Content)
	if !v.Valid() {
		return v.ValidationError()
	}

	exists, err := s.m.existsByName(ctx, req.Name, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateBlogName
	}

	return expectOne(s.m.update(ctx, id, req.Name, req.Content))
}

func (s *BlogService) DeleteBlog(ctx context.Context, id int) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	return expectOne(s.m.delete(ctx, id))
}
