package vehicle

import (
	"context"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type KnowledgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, snippets []*types.KnowledgeSnippet) ([]*types.KnowledgeSnippet, error)
	// Search matches make case-insensitively; model is optional on the snippet side
	// (an empty snippet model applies to every model of that make).
	Search(ctx context.Context, tx *gorm.DB, vehicleMake, vehicleModel string, year int, limit int) ([]*types.KnowledgeSnippet, error)
}

type knowledgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeRepo {
	return &knowledgeRepo{db: db, log: baseLog.With("repo", "KnowledgeRepo")}
}

func (kr *knowledgeRepo) Create(ctx context.Context, tx *gorm.DB, snippets []*types.KnowledgeSnippet) ([]*types.KnowledgeSnippet, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	if len(snippets) == 0 {
		return []*types.KnowledgeSnippet{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&snippets).Error; err != nil {
		return nil, err
	}
	return snippets, nil
}

func (kr *knowledgeRepo) Search(ctx context.Context, tx *gorm.DB, vehicleMake, vehicleModel string, year int, limit int) ([]*types.KnowledgeSnippet, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	var results []*types.KnowledgeSnippet
	vehicleMake = strings.ToLower(strings.TrimSpace(vehicleMake))
	vehicleModel = strings.ToLower(strings.TrimSpace(vehicleModel))
	if vehicleMake == "" || limit <= 0 {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("LOWER(make) = ?", vehicleMake).
		Where("(model = '' OR LOWER(model) = ?)", vehicleModel)
	if year > 0 {
		q = q.Where("(year_from IS NULL OR year_from <= ?)", year).
			Where("(year_to IS NULL OR year_to >= ?)", year)
	}
	// model-specific notes first
	if err := q.
		Order("CASE WHEN model = '' THEN 1 ELSE 0 END ASC").
		Order("created_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
