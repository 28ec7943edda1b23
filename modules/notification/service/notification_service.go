package service

import (
	"context"
	"strconv"
	"time"

	"jogofacil/core/cache"
	coreEntity "jogofacil/core/entity"
	"jogofacil/core/logger"
	"jogofacil/core/params"
	"jogofacil/modules/notification/dto"
	"jogofacil/modules/notification/entity"
	"jogofacil/modules/notification/repository"

	"github.com/google/uuid"
)

const unreadCountTTL = 5 * time.Minute

type NotificationService struct {
	repo  repository.NotificationRepositoryInterface
	cache cache.Cache
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, cache cache.Cache) *NotificationService {
	return &NotificationService{repo: repo, cache: cache}
}

func unreadKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Data:        coreEntity.JSONB(req.Data),
		Read:        false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, unreadKey(req.UserID))
	}
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, unreadKey(userID))
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, unreadKey(userID))
	}
	return nil
}

// CountUnread serves the bell badge; the count is cached briefly since it is
// polled far more often than it changes.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, unreadKey(userID)); err == nil {
			if n, convErr := strconv.Atoi(cached); convErr == nil {
				return n, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, unreadKey(userID), strconv.Itoa(count), unreadCountTTL); err != nil {
			logger.Warn("NotificationService:CountUnread:CacheSet:Error", "error", err)
		}
	}
	return count, nil
}
