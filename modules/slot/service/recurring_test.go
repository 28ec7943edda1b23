package service

import (
	"context"
	"testing"
	"time"

	"jogofacil/core/errors"
	"jogofacil/modules/slot/entity"

	"github.com/google/uuid"
)

func testProfile(fieldID uuid.UUID) RecurringProfile {
	return RecurringProfile{
		RegisteredTeamID: uuid.New(),
		FieldID:          fieldID,
		TeamName:         "Mensal FC",
		Category:         "Adulto",
		Gender:           "male",
		Phone:            "11999990000",
		Sport:            "futsal",
		FixedDay:         int(time.Now().AddDate(0, 0, 1).Weekday()),
		FixedTime:        "21:00",
		CourtName:        "Quadra 1",
		Price:            180,
	}
}

func TestGenerateRecurringSlotsReachesTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.fields.add(uuid.New(), "Arena Central", -23.55, -46.63, "Quadra 1")

	profile := testProfile(field.ID)
	report, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 0)
	if appErr != nil {
		t.Fatalf("generate: %v", appErr)
	}
	if report.Created != DefaultRecurringTarget {
		t.Fatalf("created = %d, want default target %d", report.Created, DefaultRecurringTarget)
	}
	if report.Skipped != 0 || report.Partial {
		t.Fatalf("report = %+v, want no skips and not partial", report)
	}

	// Every generated slot is a confirmed standing slot with the team's
	// snapshot and the right weekday.
	seen := map[string]bool{}
	for _, slot := range f.slots.slots {
		if slot.Status != entity.StatusConfirmed || slot.MatchType != entity.MatchTypeFixo || slot.Origin != entity.OriginRecurring {
			t.Fatalf("generated slot %+v is not a confirmed standing slot", slot)
		}
		if !slot.HasLocalTeam || slot.HomeTeamName == nil || *slot.HomeTeamName != "Mensal FC" {
			t.Fatal("generated slot missing the team snapshot")
		}
		day, err := time.Parse("2006-01-02", slot.Date)
		if err != nil || int(day.Weekday()) != profile.FixedDay {
			t.Fatalf("slot date %q does not fall on fixed day %d", slot.Date, profile.FixedDay)
		}
		if seen[slot.Date] {
			t.Fatalf("duplicate slot generated for %s", slot.Date)
		}
		seen[slot.Date] = true
	}
}

func TestGenerateRecurringSlotsSkipsCollisions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.fields.add(uuid.New(), "Arena Central", -23.55, -46.63, "Quadra 1")
	profile := testProfile(field.ID)

	// Occupy the first matching date ahead of time.
	day := time.Now()
	for int(day.Weekday()) != profile.FixedDay {
		day = day.AddDate(0, 0, 1)
	}
	taken := &entity.MatchSlot{
		FieldID:   field.ID,
		CourtName: profile.CourtName,
		Date:      day.Format("2006-01-02"),
		Time:      profile.FixedTime,
		Status:    entity.StatusAvailable,
	}
	if err := f.slots.Create(ctx, taken); err != nil {
		t.Fatalf("seed collision: %v", err)
	}

	report, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 10)
	if appErr != nil {
		t.Fatalf("generate: %v", appErr)
	}
	if report.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", report.Skipped)
	}
	if report.Created != 10 {
		t.Fatalf("created = %d, want 10 new slots despite the collision", report.Created)
	}
}

func TestGenerateRecurringSlotsRerunTopsUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.fields.add(uuid.New(), "Arena Central", -23.55, -46.63, "Quadra 1")
	profile := testProfile(field.ID)

	first, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 5)
	if appErr != nil || first.Created != 5 {
		t.Fatalf("first run: %+v, %v", first, appErr)
	}

	second, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 5)
	if appErr != nil {
		t.Fatalf("second run: %v", appErr)
	}
	if second.Skipped != 5 || second.Created != 5 {
		t.Fatalf("second run = %+v, want 5 skipped and 5 new", second)
	}
	if len(f.slots.slots) != 10 {
		t.Fatalf("total slots = %d, want 10", len(f.slots.slots))
	}
}

func TestGenerateRecurringSlotsInvalidFixedDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.fields.add(uuid.New(), "Arena Central", -23.55, -46.63, "Quadra 1")

	profile := testProfile(field.ID)
	profile.FixedDay = 7
	_, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 10)
	if appErr == nil || appErr.Code != errors.ErrGenerationBound {
		t.Fatalf("got %v, want GENERATION_BOUND", appErr)
	}
}

func TestGenerateRecurringSlotsTerminatesAtWalkCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	field := f.fields.add(uuid.New(), "Arena Central", -23.55, -46.63, "Quadra 1")

	// 120 walked days hold at most 18 occurrences of one weekday, so a
	// target of 30 must stop at the cap and report a partial run.
	profile := testProfile(field.ID)
	report, appErr := f.svc.GenerateRecurringSlots(ctx, profile, 30)
	if appErr != nil {
		t.Fatalf("generate: %v", appErr)
	}
	if !report.Partial {
		t.Fatal("hitting the walk cap must be reported as partial")
	}
	if report.Created < 17 || report.Created > 18 {
		t.Fatalf("created = %d, want 17 or 18 within the 120-day walk", report.Created)
	}
}
