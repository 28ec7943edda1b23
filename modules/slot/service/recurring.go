package service

import (
	"context"
	"time"

	"jogofacil/core/errors"
	"jogofacil/core/logger"
	"jogofacil/modules/slot/entity"

	"github.com/google/uuid"
)

const (
	// DefaultRecurringTarget is how many standing slots one generator run
	// tops up to.
	DefaultRecurringTarget = 10

	// maxDaysWalked bounds the calendar walk so a profile whose weekday can
	// never match (bad data) still terminates.
	maxDaysWalked = 120
)

// RecurringProfile is the standing-reservation data the generator projects
// onto the calendar. Team services map their mensalista records into this.
type RecurringProfile struct {
	RegisteredTeamID uuid.UUID
	FieldID          uuid.UUID
	TeamName         string
	Category         string
	Gender           string
	Phone            string
	LogoURL          *string
	Sport            string
	FixedDay         int
	FixedTime        string
	CourtName        string
	Price            float64
}

// GenerationReport is the outcome of one generator run. Partial is set when
// the day-walk cap was hit before reaching the target; the slots that were
// created stay created.
type GenerationReport struct {
	Created int  `json:"created"`
	Skipped int  `json:"skipped"`
	Partial bool `json:"partial"`
}

// GenerateRecurringSlots walks forward from today and materializes a
// confirmed slot on each future date whose weekday matches the profile,
// until targetCount new slots exist or the walk cap is reached. Dates that
// already carry a slot at the same time and court are skipped, which makes
// re-runs top the standing schedule back up instead of duplicating it.
// Each insert is independent; a failed date does not roll back the others.
func (s *SlotService) GenerateRecurringSlots(ctx context.Context, profile RecurringProfile, targetCount int) (*GenerationReport, *errors.AppError) {
	logger.Info("SlotService:GenerateRecurringSlots:Start",
		"registered_team_id", profile.RegisteredTeamID, "fixed_day", profile.FixedDay, "target", targetCount)

	if profile.FixedDay < 0 || profile.FixedDay > 6 {
		return nil, errors.NewAppError(errors.ErrGenerationBound, "Fixed day must be between 0 (Sunday) and 6 (Saturday)", nil)
	}
	if _, err := time.Parse(timeLayout, profile.FixedTime); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Fixed time must be HH:MM", err)
	}
	if targetCount <= 0 {
		targetCount = DefaultRecurringTarget
	}

	report := &GenerationReport{}
	day := time.Now()
	for walked := 0; walked < maxDaysWalked && report.Created < targetCount; walked++ {
		if int(day.Weekday()) != profile.FixedDay {
			day = day.AddDate(0, 0, 1)
			continue
		}

		date := day.Format(dateLayout)
		exists, err := s.repo.ExistsAt(ctx, profile.FieldID, date, profile.FixedTime, profile.CourtName)
		if err != nil {
			return report, errors.NewAppError(errors.ErrInternalServer, "Failed to check slot collision", err)
		}
		if exists {
			report.Skipped++
			day = day.AddDate(0, 0, 1)
			continue
		}

		name, category, gender, phone := profile.TeamName, profile.Category, profile.Gender, profile.Phone
		slot := &entity.MatchSlot{
			FieldID:          profile.FieldID,
			CourtName:        profile.CourtName,
			Date:             date,
			Time:             profile.FixedTime,
			DurationMinutes:  60,
			Sport:            profile.Sport,
			MatchType:        entity.MatchTypeFixo,
			Origin:           entity.OriginRecurring,
			Price:            profile.Price,
			Status:           entity.StatusConfirmed,
			HasLocalTeam:     true,
			HomeTeamName:     &name,
			HomeTeamCategory: &category,
			HomeTeamGender:   &gender,
			HomeTeamPhone:    &phone,
			HomeTeamLogoURL:  profile.LogoURL,
		}
		if err := s.repo.Create(ctx, slot); err != nil {
			logger.Warn("SlotService:GenerateRecurringSlots:Insert:Error", "error", err, "date", date)
			report.Skipped++
		} else {
			report.Created++
		}
		day = day.AddDate(0, 0, 1)
	}

	if report.Created < targetCount {
		report.Partial = true
		logger.Warn("SlotService:GenerateRecurringSlots:Partial",
			"created", report.Created, "skipped", report.Skipped, "target", targetCount)
	}
	return report, nil
}
