package gormsql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type ArticleRepository struct {
	db *gorm.DB
}

var _ contract.IArticleRepository = (*ArticleRepository)(nil)

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// resolveTags finds or creates a tag row per name.
func resolveTags(tx *gorm.DB, names []string) ([]TagModel, error) {
	tags := make([]TagModel, 0, len(names))
	for _, name := range names {
		var tag TagModel
		if err := tx.Where(TagModel{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, translate(err, fmt.Sprintf("resolve tag %q", name))
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *ArticleRepository) CreateArticle(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, article.Tags)
		if err != nil {
			return err
		}
		m := &ArticleModel{
			Title:     article.Title,
			Content:   article.Content,
			Preview:   article.Preview,
			AuthorID:  article.AuthorID,
			Tags:      tags,
			CreatedAt: article.CreatedAt,
			UpdatedAt: article.UpdatedAt,
		}
		// tags already exist; only the join rows are written
		if err := tx.Omit("Tags.*").Create(m).Error; err != nil {
			return translate(err, "create article")
		}
		article.ID = m.ID
		return nil
	})
}

func (r *ArticleRepository) GetArticleByID(ctx context.Context, id uint64) (*entity.Article, error) {
	var m ArticleModel
	if err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("get article %d", id))
	}
	return toArticleEntity(&m), nil
}

func (r *ArticleRepository) GetArticleCounters(ctx context.Context, id uint64) (int64, int64, error) {
	var row struct {
		LikeCount    int64
		CommentCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&ArticleModel{}).
		Select("like_count, comment_count").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return 0, 0, translate(err, fmt.Sprintf("get counters of article %d", id))
	}
	return row.LikeCount, row.CommentCount, nil
}

func (r *ArticleRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB, p contract.Pagination) ([]*entity.Article, int64, error) {
	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&ArticleModel{})).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count articles")
	}
	var models []ArticleModel
	err := scope(r.db.WithContext(ctx)).
		Preload("Tags").
		Order("created_at DESC, id DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, translate(err, "list articles")
	}
	articles := make([]*entity.Article, 0, len(models))
	for i := range models {
		articles = append(articles, toArticleEntity(&models[i]))
	}
	return articles, total, nil
}

func (r *ArticleRepository) ListArticles(ctx context.Context, p contract.Pagination) ([]*entity.Article, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB { return db }, p)
}

func (r *ArticleRepository) ListArticlesByAuthor(ctx context.Context, authorID uint64, p contract.Pagination) ([]*entity.Article, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("author_id = ?", authorID) }, p)
}

// UpdateArticle leaves like_count and comment_count alone; those only move with
// their like-set and comments.
func (r *ArticleRepository) UpdateArticle(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ArticleModel{ID: article.ID}).Updates(map[string]interface{}{
			"title":      article.Title,
			"content":    article.Content,
			"preview":    article.Preview,
			"updated_at": article.UpdatedAt,
		})
		if res.Error != nil {
			return translate(res.Error, fmt.Sprintf("update article %d", article.ID))
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, fmt.Sprintf("update article %d", article.ID))
		}
		tags, err := resolveTags(tx, article.Tags)
		if err != nil {
			return err
		}
		if err := tx.Model(&ArticleModel{ID: article.ID}).Association("Tags").Replace(tags); err != nil {
			return translate(err, "replace tags")
		}
		return nil
	})
}

// DeleteArticle removes the article with its comments, likes and tag links.
func (r *ArticleRepository) DeleteArticle(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&CommentModel{}).Select("id").Where("article_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&CommentLikeModel{}).Error; err != nil {
			return translate(err, "delete comment likes")
		}
		if err := tx.Where("article_id = ?", id).Delete(&CommentModel{}).Error; err != nil {
			return translate(err, "delete comments")
		}
		if err := tx.Where("article_id = ?", id).Delete(&ArticleLikeModel{}).Error; err != nil {
			return translate(err, "delete article likes")
		}
		if err := tx.Model(&ArticleModel{ID: id}).Association("Tags").Clear(); err != nil {
			return translate(err, "clear tags")
		}
		res := tx.Delete(&ArticleModel{}, id)
		if res.Error != nil {
			return translate(res.Error, fmt.Sprintf("delete article %d", id))
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, fmt.Sprintf("delete article %d", id))
		}
		return nil
	})
}
