package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Post, error)
	GetListByAuthorIDs(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Post, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByAuthorID(ctx context.Context, authorID string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetList returns every post, newest first. Ids break creation-time ties so
// the order is stable.
func (r *postRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) GetListByAuthorIDs(
	ctx context.Context, authorIDs []string, offset, limit int,
) ([]entity.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var records []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id IN (?)", authorIDs).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Post{}).
		Where("author_id=?", authorID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id).Error
}

func (r *postRepository) DeleteByAuthorID(ctx context.Context, authorID string) error {
	return xcontext.DB(ctx).Delete(&entity.Post{}, "author_id=?", authorID).Error
}
