package sql

import (
	"context"
	"time"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

func (r *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		convErr := convertErrorType(err)
		if !errors.Is(convErr, repositories.ErrDuplicateKey) {
			r.logger.WithError(err).Errorf("failed to create link %+v", *link)
		}
		return convErr
	}
	return nil
}

// CreateAnonymousBounded создает анонимную ссылку при условии что посетитель
// еще не исчерпал квоту max. Подсчет и вставка выполняются в одной транзакции.
func (r *LinkRepo) CreateAnonymousBounded(ctx context.Context, link *models.Link, max int) error {
	if link.VisitorUUID == nil {
		return errors.Wrap(repositories.ErrUnknown, "link has no visitor uuid")
	}

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Link{}).
			Where("visitor_uuid = ?", *link.VisitorUUID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(max) {
			return repositories.ErrQuotaExceeded
		}
		return tx.Create(link).Error
	})
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrQuotaExceeded) {
			return repositories.ErrQuotaExceeded
		}
		convErr := convertErrorType(txErr)
		if !errors.Is(convErr, repositories.ErrDuplicateKey) {
			r.logger.WithError(txErr).Errorf("failed to create anonymous link %+v", *link)
		}
		return convErr
	}
	return nil
}

func (r *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get link by code %s", code)
		return nil, convertErrorType(err)
	}
	return &link, nil
}

func (r *LinkRepo) GetByDestination(ctx context.Context, owner models.OwnerKey, destination string) (*models.Link, error) {
	var link models.Link
	err := r.ownerScope(ctx, owner).Where("destination = ?", destination).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get link by destination %s", destination)
		return nil, convertErrorType(err)
	}
	return &link, nil
}

// ListByOwner возвращает ссылки владельца в порядке вставки.
func (r *LinkRepo) ListByOwner(ctx context.Context, owner models.OwnerKey) ([]models.Link, error) {
	var links []models.Link
	if err := r.ownerScope(ctx, owner).Order("id asc").Find(&links).Error; err != nil {
		r.logger.WithError(err).Error("failed to list links by owner")
		return nil, convertErrorType(err)
	}
	return links, nil
}

func (r *LinkRepo) CountByOwner(ctx context.Context, owner models.OwnerKey) (int64, error) {
	var count int64
	if err := r.ownerScope(ctx, owner).Model(&models.Link{}).Count(&count).Error; err != nil {
		r.logger.WithError(err).Error("failed to count links by owner")
		return 0, convertErrorType(err)
	}
	return count, nil
}

// IncrementClicks атомарно увеличивает счетчик переходов на единицу.
// Инкремент выполняется на стороне БД, конкурентные вызовы не теряются.
func (r *LinkRepo) IncrementClicks(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to increment clicks for link %d", id)
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *LinkRepo) UpdateStatus(ctx context.Context, id uint, status models.LinkStatus, checkedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            status,
			"last_status_check": checkedAt,
		})
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to update status for link %d", id)
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *LinkRepo) UpdateFavicon(ctx context.Context, id uint, fav repositories.FaviconUpdate, checkedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"favicon_url":          fav.SourceURL,
			"favicon_image":        fav.Image,
			"favicon_mime":         fav.MIMEType,
			"favicon_last_checked": checkedAt,
		})
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to update favicon for link %d", id)
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *LinkRepo) ownerScope(ctx context.Context, owner models.OwnerKey) *gorm.DB {
	q := r.db.WithContext(ctx)
	if owner.IsAnonymous() {
		return q.Where("visitor_uuid = ?", *owner.VisitorUUID)
	}
	return q.Where("user_id = ?", owner.UserID)
}
