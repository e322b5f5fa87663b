package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeek_MondayConvention(t *testing.T) {
	// 2024-01-15 is a Monday.
	monday := localDate(2024, time.January, 15)

	assert.Equal(t, monday, StartOfWeek(monday))
	// Wednesday of the same week.
	assert.Equal(t, monday, StartOfWeek(localDate(2024, time.January, 17)))
	// Sunday belongs to the week that started six days earlier.
	assert.Equal(t, monday, StartOfWeek(localDate(2024, time.January, 21)))
}

func TestStartOfWeek_StableAcrossWholeWeek(t *testing.T) {
	monday := localDate(2024, time.March, 4)
	for i := 0; i < 7; i++ {
		day := AddDays(monday, i)
		assert.Equal(t, monday, StartOfWeek(day), "day %s", ToISODate(day))
	}
}

func TestStartOfWeek_TruncatesTimeOfDay(t *testing.T) {
	noonish := time.Date(2024, time.January, 17, 13, 45, 12, 0, time.Local)
	got := StartOfWeek(noonish)
	assert.Equal(t, localDate(2024, time.January, 15), got)
	assert.Equal(t, 0, got.Hour())
}

func TestAddDays_CrossesMonthAndYearBoundaries(t *testing.T) {
	assert.Equal(t, "2024-02-01", ToISODate(AddDays(localDate(2024, time.January, 31), 1)))
	assert.Equal(t, "2025-01-01", ToISODate(AddDays(localDate(2024, time.December, 31), 1)))
	assert.Equal(t, "2024-02-29", ToISODate(AddDays(localDate(2024, time.March, 1), -1)))
}

func TestAddDays_DoesNotMutateInput(t *testing.T) {
	d := localDate(2024, time.June, 10)
	_ = AddDays(d, 30)
	assert.Equal(t, "2024-06-10", ToISODate(d))
}

func TestToISODate_PlusSevenDays(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{localDate(2024, time.January, 1), "2024-01-08"},
		{localDate(2024, time.January, 29), "2024-02-05"},
		{localDate(2024, time.December, 28), "2025-01-04"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToISODate(AddDays(tc.in, 7)))
	}
}

func TestBuildWeek(t *testing.T) {
	w := BuildWeek(localDate(2024, time.January, 17))

	assert.Equal(t, localDate(2024, time.January, 15), w.Start)
	assert.Equal(t, localDate(2024, time.January, 22), w.End)
	assert.Len(t, w.Days, 7)
	for i, day := range w.Days {
		assert.Equal(t, AddDays(w.Start, i), day)
	}
	// End is exclusive: the last day is the Sunday before it.
	assert.Equal(t, localDate(2024, time.January, 21), w.Days[6])
}
