package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jogofacil/core/database"
	coreEntity "jogofacil/core/entity"
	"jogofacil/core/logger"
	"jogofacil/core/params"
	"jogofacil/modules/slot/dto"
	"jogofacil/modules/slot/entity"

	"github.com/google/uuid"
)

type SlotRepository struct {
	DB database.IDatabase
}

func NewSlotRepository(db database.IDatabase) *SlotRepository {
	return &SlotRepository{DB: db}
}

// SlotRepositoryInterface is the persistence contract of the booking
// coordinator. Every state-changing method is a conditional write returning
// the number of rows it touched; zero rows means the slot was not in a
// state accepting the transition and the database, not the caller's stale
// read, decided that.
type SlotRepositoryInterface interface {
	Create(ctx context.Context, slot *entity.MatchSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MatchSlot, error)
	ListAvailable(ctx context.Context, filters dto.ListFilters) ([]entity.AvailableSlot, error)
	ListByFieldID(ctx context.Context, fieldID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSlotEntity, error)
	Claim(ctx context.Context, slotID uuid.UUID, booking entity.BookingSnapshot, toStatus string) (int64, error)
	Decide(ctx context.Context, slotID uuid.UUID, toStatus string, clearReceipt bool) (int64, error)
	Cancel(ctx context.Context, slotID uuid.UUID) (int64, error)
	Delete(ctx context.Context, slotID uuid.UUID) (int64, error)
	ExistsAt(ctx context.Context, fieldID uuid.UUID, date, timeOfDay, courtName string) (bool, error)
	SetReceipt(ctx context.Context, slotID uuid.UUID, receiptURL string, uploadedAt time.Time) (int64, error)
	SetVerificationResult(ctx context.Context, slotID uuid.UUID, result coreEntity.JSONB) error
}

const slotColumns = `id, field_id, court_name, date, time, duration_minutes, sport,
	match_type, origin, price, status, has_local_team, home_team_name,
	home_team_category, home_team_gender, home_team_phone, home_team_logo_url,
	allowed_opponent_categories, booked_by_user_id, booked_team_name,
	booked_team_category, booked_team_gender, booked_team_phone,
	booked_team_logo_url, receipt_url, receipt_uploaded_at,
	ai_verification_result, created_at, updated_at`

func (r *SlotRepository) Create(ctx context.Context, slot *entity.MatchSlot) error {
	query := `
		INSERT INTO match_slots (field_id, court_name, date, time, duration_minutes,
			sport, match_type, origin, price, status, has_local_team, home_team_name,
			home_team_category, home_team_gender, home_team_phone, home_team_logo_url,
			allowed_opponent_categories, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	row := r.DB.QueryRowContext(ctx, query,
		slot.FieldID, slot.CourtName, slot.Date, slot.Time, slot.DurationMinutes,
		slot.Sport, slot.MatchType, slot.Origin, slot.Price, slot.Status,
		slot.HasLocalTeam, slot.HomeTeamName, slot.HomeTeamCategory,
		slot.HomeTeamGender, slot.HomeTeamPhone, slot.HomeTeamLogoURL,
		slot.AllowedOpponentCategories)
	if err := row.Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
		logger.Error("SlotRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MatchSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM match_slots WHERE id = $1`
	var slot entity.MatchSlot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &slot, nil
}

// ListAvailable serves the Explore view: available slots on future dates,
// optionally narrowed by sport, gender, and the requester's team category.
// The category filter mirrors the eligibility rules: open rentals always
// pass, challenges pass only when the category is allowed. Distance
// filtering happens in the service, not here.
func (r *SlotRepository) ListAvailable(ctx context.Context, filters dto.ListFilters) ([]entity.AvailableSlot, error) {
	var (
		conditions = []string{
			"s.status = 'available'",
			"s.date >= $1",
		}
		args = []any{time.Now().Format("2006-01-02")}
	)

	if filters.Sport != "" {
		args = append(args, filters.Sport)
		conditions = append(conditions, fmt.Sprintf("s.sport = $%d", len(args)))
	}
	if filters.Gender != "" {
		args = append(args, filters.Gender)
		conditions = append(conditions, fmt.Sprintf("(s.home_team_gender IS NULL OR s.home_team_gender = $%d)", len(args)))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		conditions = append(conditions, fmt.Sprintf("(s.has_local_team = false OR $%d = ANY(s.allowed_opponent_categories))", len(args)))
	}

	query := `
		SELECT s.id, s.field_id, s.court_name, s.date, s.time, s.duration_minutes,
			s.sport, s.match_type, s.origin, s.price, s.status, s.has_local_team,
			s.home_team_name, s.home_team_category, s.home_team_gender,
			s.home_team_phone, s.home_team_logo_url, s.allowed_opponent_categories,
			s.booked_by_user_id, s.booked_team_name, s.booked_team_category,
			s.booked_team_gender, s.booked_team_phone, s.booked_team_logo_url,
			s.receipt_url, s.receipt_uploaded_at, s.ai_verification_result,
			s.created_at, s.updated_at,
			f.name AS field_name, f.lat AS field_lat, f.lng AS field_lng
		FROM match_slots s
		JOIN fields f ON f.id = s.field_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY s.date, s.time
	`

	var slots []entity.AvailableSlot
	if err := r.DB.SelectContext(ctx, &slots, query, args...); err != nil {
		logger.Error("SlotRepository:ListAvailable:Error", "error", err)
		return nil, err
	}
	return slots, nil
}

// ListByFieldID is the owner agenda: every slot of a field regardless of
// status, newest date first, paginated.
func (r *SlotRepository) ListByFieldID(ctx context.Context, fieldID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSlotEntity, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM match_slots WHERE field_id = $1`
	if err := r.DB.GetContext(ctx, &total, countQuery, fieldID); err != nil {
		logger.Error("SlotRepository:ListByFieldID:Count:Error", "error", err)
		return nil, err
	}

	offset := (queryParams.PageNumber - 1) * queryParams.PageSize
	query := `SELECT ` + slotColumns + `
		FROM match_slots
		WHERE field_id = $1
		ORDER BY date DESC, time DESC
		LIMIT $2 OFFSET $3`

	var slots []entity.MatchSlot
	if err := r.DB.SelectContext(ctx, &slots, query, fieldID, queryParams.PageSize, offset); err != nil {
		logger.Error("SlotRepository:ListByFieldID:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedSlotEntity{
		Items:      slots,
		TotalItems: total,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

// Claim writes the full booking group and advances status in a single
// conditional UPDATE guarded on status = 'available'. The WHERE clause is
// the arbiter of the race: of two concurrent claims exactly one matches the
// row, the other gets zero rows back and never touches the winner's data.
func (r *SlotRepository) Claim(ctx context.Context, slotID uuid.UUID, booking entity.BookingSnapshot, toStatus string) (int64, error) {
	query := `
		UPDATE match_slots
		SET status = $2,
		    booked_by_user_id = $3,
		    booked_team_name = $4,
		    booked_team_category = $5,
		    booked_team_gender = $6,
		    booked_team_phone = $7,
		    booked_team_logo_url = $8,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'available'
	`
	rows, err := r.DB.ExecRowsContext(ctx, query, slotID, toStatus,
		booking.UserID, booking.TeamName, booking.TeamCategory,
		booking.TeamGender, booking.TeamPhone, booking.TeamLogoURL)
	if err != nil {
		logger.Error("SlotRepository:Claim:Error", "error", err, "slot_id", slotID)
		return 0, err
	}
	return rows, nil
}

// Decide moves a pending slot to confirmed or rejected. Rejection clears
// the receipt so a later claimant starts clean.
func (r *SlotRepository) Decide(ctx context.Context, slotID uuid.UUID, toStatus string, clearReceipt bool) (int64, error) {
	var query string
	if clearReceipt {
		query = `
			UPDATE match_slots
			SET status = $2, receipt_url = NULL, receipt_uploaded_at = NULL,
			    ai_verification_result = NULL, updated_at = NOW()
			WHERE id = $1 AND status IN ('pending_verification', 'pending_payment')
		`
	} else {
		query = `
			UPDATE match_slots
			SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status IN ('pending_verification', 'pending_payment')
		`
	}
	rows, err := r.DB.ExecRowsContext(ctx, query, slotID, toStatus)
	if err != nil {
		logger.Error("SlotRepository:Decide:Error", "error", err, "slot_id", slotID)
		return 0, err
	}
	return rows, nil
}

// Cancel returns a claimed slot to available, clearing every booking field
// so the row is indistinguishable from one that was never claimed.
func (r *SlotRepository) Cancel(ctx context.Context, slotID uuid.UUID) (int64, error) {
	query := `
		UPDATE match_slots
		SET status = 'available',
		    booked_by_user_id = NULL,
		    booked_team_name = NULL,
		    booked_team_category = NULL,
		    booked_team_gender = NULL,
		    booked_team_phone = NULL,
		    booked_team_logo_url = NULL,
		    receipt_url = NULL,
		    receipt_uploaded_at = NULL,
		    ai_verification_result = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND status <> 'available'
	`
	rows, err := r.DB.ExecRowsContext(ctx, query, slotID)
	if err != nil {
		logger.Error("SlotRepository:Cancel:Error", "error", err, "slot_id", slotID)
		return 0, err
	}
	return rows, nil
}

// Delete removes a slot, allowed only while nothing claimed it.
func (r *SlotRepository) Delete(ctx context.Context, slotID uuid.UUID) (int64, error) {
	query := `DELETE FROM match_slots WHERE id = $1 AND status = 'available'`
	rows, err := r.DB.ExecRowsContext(ctx, query, slotID)
	if err != nil {
		logger.Error("SlotRepository:Delete:Error", "error", err, "slot_id", slotID)
		return 0, err
	}
	return rows, nil
}

// ExistsAt is the recurring generator's collision probe: exact
// (field, date, time, court) equality only, overlaps do not count.
func (r *SlotRepository) ExistsAt(ctx context.Context, fieldID uuid.UUID, date, timeOfDay, courtName string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM match_slots
		WHERE field_id = $1 AND date = $2 AND time = $3 AND court_name = $4
	)`
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, fieldID, date, timeOfDay, courtName); err != nil {
		logger.Error("SlotRepository:ExistsAt:Error", "error", err)
		return false, err
	}
	return exists, nil
}

func (r *SlotRepository) SetReceipt(ctx context.Context, slotID uuid.UUID, receiptURL string, uploadedAt time.Time) (int64, error) {
	query := `
		UPDATE match_slots
		SET receipt_url = $2, receipt_uploaded_at = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending_verification', 'pending_payment')
	`
	rows, err := r.DB.ExecRowsContext(ctx, query, slotID, receiptURL, uploadedAt)
	if err != nil {
		logger.Error("SlotRepository:SetReceipt:Error", "error", err, "slot_id", slotID)
		return 0, err
	}
	return rows, nil
}

func (r *SlotRepository) SetVerificationResult(ctx context.Context, slotID uuid.UUID, result coreEntity.JSONB) error {
	query := `UPDATE match_slots SET ai_verification_result = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, slotID, result); err != nil {
		logger.Error("SlotRepository:SetVerificationResult:Error", "error", err, "slot_id", slotID)
		return err
	}
	return nil
}
