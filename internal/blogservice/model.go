package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webblog/api/internal/common"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateBlogName = errors.New("blog name already exists")
)

const blogColumns = `id_blog, blog_name, blog_content, author_name, post_time`

func newBlogModel(db *common.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) count(ctx context.Context) (int, error) {
	var n int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog`).Scan(&n)
	if err != nil {
		return 0, err
	}

	return n, nil
}

func (m *BlogModel) countByAuthor(ctx context.Context, author string) (int, error) {
	query := m.db.Rebind(`SELECT COUNT(*) FROM blog WHERE author_name = ?`)

	var n int
	err := m.db.QueryRowContext(ctx, query, author).Scan(&n)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// existsByName reports whether another blog already uses name. excludeID is
// ignored when it is zero.
func (m *BlogModel) existsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := m.db.Rebind(`SELECT EXISTS (SELECT 1 FROM blog WHERE blog_name = ? AND id_blog <> ?)`)

	var exists bool
	err := m.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (m *BlogModel) insert(ctx context.Context, name, content, author string) (int, error) {
	query := `
		INSERT INTO blog (blog_name, blog_content, author_name)
		VALUES (?, ?, ?)`

	id, err := m.db.InsertID(ctx, query, "id_blog", name, content, author)
	if err != nil {
		if _, ok := common.UniqueViolation(err); ok {
			return 0, ErrDuplicateBlogName
		}
		return 0, err
	}

	return id, nil
}

func (m *BlogModel) listPage(ctx context.Context, limit, offset int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blog
		ORDER BY post_time DESC, id_blog DESC
		LIMIT ? OFFSET ?`

	return m.query(ctx, query, limit, offset)
}

func (m *BlogModel) listPageByAuthor(ctx context.Context, author string, limit, offset int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blog
		WHERE author_name = ?
		ORDER BY post_time DESC, id_blog DESC
		LIMIT ? OFFSET ?`

	return m.query(ctx, query, author, limit, offset)
}

// query never returns a nil slice so an empty page encodes as [].
func (m *BlogModel) query(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, m.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var b Blog
		err := rows.Scan(&b.ID, &b.Name, &b.Content, &b.AuthorName, &b.PostTime)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getByID(ctx context.Context, id int) (*Blog, error) {
	query := m.db.Rebind(`SELECT ` + blogColumns + ` FROM blog WHERE id_blog = ?`)

	var b Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Content, &b.AuthorName, &b.PostTime)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &b, nil
}

// update changes name and content only; the author is immutable.
func (m *BlogModel) update(ctx context.Context, id int, name, content string) (int64, error) {
	query := m.db.Rebind(`
		UPDATE blog
		SET blog_name = ?, blog_content = ?
		WHERE id_blog = ?`)

	res, err := m.db.ExecContext(ctx, query, name, content, id)
	if err != nil {
		if _, ok := common.UniqueViolation(err); ok {
			return 0, ErrDuplicateBlogName
		}
		return 0, err
	}

	return res.RowsAffected()
}

func (m *BlogModel) delete(ctx context.Context, id int) (int64, error) {
	query := m.db.Rebind(`DELETE FROM blog WHERE id_blog = ?`)

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// expectOne turns an affected row count into ErrRecordNotFound when nothing matched.
func expectOne(rows int64, err error) error {
	if err != nil {
		return err
	}

	switch {
	case rows == 0:
		return ErrRecordNotFound
	case rows > 1:
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}

	return nil
}
