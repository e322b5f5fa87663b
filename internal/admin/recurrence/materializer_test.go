package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func dueDates(instances []Instance) []string {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		out = append(out, inst.DueDate.Format("2006-01-02"))
	}
	return out
}

func TestMaterialize_WeeklyFromToday(t *testing.T) {
	seeds := []Seed{{
		OrgID:    "org-1",
		Title:    "Send weekly report",
		DueDate:  datePtr(2024, time.January, 1),
		Rule:     RuleWeekly,
		Interval: 1,
		Count:    3,
	}}

	got := Materialize(seeds, date(2024, time.January, 1))

	assert.Equal(t, []string{"2024-01-08", "2024-01-15", "2024-01-22"}, dueDates(got))
}

func TestMaterialize_WeeklySpacingMatchesInterval(t *testing.T) {
	seeds := []Seed{{
		OrgID:    "org-1",
		Title:    "Biweekly check-in",
		DueDate:  datePtr(2024, time.March, 4),
		Rule:     RuleWeekly,
		Interval: 2,
		Count:    4,
	}}

	got := Materialize(seeds, date(2024, time.March, 4))

	// Each occurrence is exactly 7*interval = 14 calendar days after
	// the previous one.
	assert.Equal(t, []string{"2024-03-18", "2024-04-01", "2024-04-15", "2024-04-29"}, dueDates(got))
}

func TestMaterialize_MonthlySpacing(t *testing.T) {
	seeds := []Seed{{
		OrgID:    "org-1",
		Title:    "Monthly retainer invoice",
		DueDate:  datePtr(2024, time.January, 15),
		Rule:     RuleMonthly,
		Interval: 1,
		Count:    3,
	}}

	got := Materialize(seeds, date(2024, time.January, 15))

	assert.Equal(t, []string{"2024-02-15", "2024-03-15", "2024-04-15"}, dueDates(got))
}

func TestMaterialize_MonthlyEndOfMonthRollsOver(t *testing.T) {
	seeds := []Seed{{
		OrgID:   "org-1",
		Title:   "Month-end books",
		DueDate: datePtr(2024, time.January, 31),
		Rule:    RuleMonthly,
		Count:   2,
	}}

	got := Materialize(seeds, date(2024, time.January, 31))

	// AddDate semantics: Jan 31 + 1 month = Mar 2 (2024 is a leap year).
	assert.Equal(t, []string{"2024-03-02", "2024-04-02"}, dueDates(got))
}

func TestMaterialize_UntilBoundStopsBeforeEmitting(t *testing.T) {
	seeds := []Seed{{
		OrgID:    "org-1",
		Title:    "Short-lived series",
		DueDate:  datePtr(2024, time.January, 1),
		Rule:     RuleMonthly,
		Interval: 2,
		Count:    2,
		Until:    datePtr(2024, time.February, 15),
	}}

	// First candidate is 2024-03-01, already past the until bound.
	got := Materialize(seeds, date(2024, time.January, 1))

	assert.Empty(t, got)
}

func TestMaterialize_UntilBoundTruncatesSeries(t *testing.T) {
	seeds := []Seed{{
		OrgID:   "org-1",
		Title:   "Truncated series",
		DueDate: datePtr(2024, time.January, 1),
		Rule:    RuleWeekly,
		Count:   6,
		Until:   datePtr(2024, time.January, 20),
	}}

	got := Materialize(seeds, date(2024, time.January, 1))

	assert.Equal(t, []string{"2024-01-08", "2024-01-15"}, dueDates(got))
}

func TestMaterialize_UnknownRuleEmitsNothing(t *testing.T) {
	seeds := []Seed{{
		OrgID:    "org-1",
		Title:    "Daily is not supported",
		DueDate:  datePtr(2024, time.January, 1),
		Rule:     "daily",
		Interval: 1,
		Count:    10,
	}}

	assert.Empty(t, Materialize(seeds, date(2024, time.January, 1)))
}

func TestMaterialize_NilDueDateSkipsSeed(t *testing.T) {
	seeds := []Seed{{
		OrgID: "org-1",
		Title: "No anchor",
		Rule:  RuleWeekly,
	}}

	assert.Empty(t, Materialize(seeds, date(2024, time.January, 1)))
}

func TestMaterialize_PastOccurrencesSkippedWithoutCounting(t *testing.T) {
	// Seed anchored four weeks in the past: the first four steps land
	// before today and are skipped, then three future dates are emitted.
	seeds := []Seed{{
		OrgID:   "org-1",
		Title:   "Old weekly seed",
		DueDate: datePtr(2024, time.January, 1),
		Rule:    RuleWeekly,
		Count:   3,
	}}

	got := Materialize(seeds, date(2024, time.February, 1))

	assert.Equal(t, []string{"2024-02-05", "2024-02-12", "2024-02-19"}, dueDates(got))
	for _, inst := range got {
		assert.False(t, inst.DueDate.Before(date(2024, time.February, 1)))
	}
}

func TestMaterialize_DefaultsAppliedForUnsetFields(t *testing.T) {
	seeds := []Seed{{
		OrgID:   "org-1",
		Title:   "Bare seed",
		DueDate: datePtr(2024, time.June, 3),
		Rule:    RuleWeekly,
		// Interval and Count unset: defaults 1 and 6.
	}}

	got := Materialize(seeds, date(2024, time.June, 3))

	assert.Len(t, got, DefaultCount)
	assert.Equal(t, "2024-06-10", got[0].DueDate.Format("2006-01-02"))
}

func TestMaterialize_InstanceFieldsCopiedFromSeed(t *testing.T) {
	clientID := uint(42)
	seeds := []Seed{{
		OrgID:    "org-9",
		ClientID: &clientID,
		Title:    "Retainer work",
		Priority: "high",
		DueDate:  datePtr(2024, time.May, 1),
		Rule:     RuleMonthly,
		Count:    1,
	}}

	got := Materialize(seeds, date(2024, time.May, 1))

	assert.Len(t, got, 1)
	inst := got[0]
	assert.Equal(t, "org-9", inst.OrgID)
	assert.Equal(t, &clientID, inst.ClientID)
	assert.Equal(t, "Retainer work", inst.Title)
	assert.Equal(t, "todo", inst.Status)
	assert.Equal(t, "high", inst.Priority)
	assert.Equal(t, 0, inst.Position)
}

func TestMaterialize_PriorityDefaultsToMedium(t *testing.T) {
	seeds := []Seed{{
		OrgID:   "org-1",
		Title:   "No priority set",
		DueDate: datePtr(2024, time.May, 1),
		Rule:    RuleWeekly,
		Count:   1,
	}}

	got := Materialize(seeds, date(2024, time.May, 1))

	assert.Len(t, got, 1)
	assert.Equal(t, "medium", got[0].Priority)
}

func TestMaterialize_MultipleSeedsCollectedIntoOneBatch(t *testing.T) {
	seeds := []Seed{
		{OrgID: "org-1", Title: "A", DueDate: datePtr(2024, time.January, 1), Rule: RuleWeekly, Count: 2},
		{OrgID: "org-2", Title: "B", DueDate: datePtr(2024, time.January, 1), Rule: RuleMonthly, Count: 2},
		{OrgID: "org-3", Title: "C", DueDate: datePtr(2024, time.January, 1), Rule: "bogus", Count: 2},
	}

	got := Materialize(seeds, date(2024, time.January, 1))

	assert.Len(t, got, 4)
}
