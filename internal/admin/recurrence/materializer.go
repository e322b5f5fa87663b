package recurrence

import "time"

// Recurrence rules recognized on task seeds. Any other value ends
// generation for that seed with zero instances.
const (
	RuleWeekly  = "weekly"
	RuleMonthly = "monthly"
)

const (
	// DefaultInterval is used when a seed carries no interval or a
	// non-positive one.
	DefaultInterval = 1
	// DefaultCount is used when a seed carries no count or a
	// non-positive one.
	DefaultCount = 6
)

// Seed is a task row with a recurrence rule, used as the template for
// generating future occurrences.
type Seed struct {
	OrgID    string
	ClientID *uint
	Title    string
	Priority string
	DueDate  *time.Time
	Rule     string
	Interval int
	Count    int
	Until    *time.Time
}

// Instance is one generated future occurrence, ready to be inserted as
// a concrete task row.
type Instance struct {
	OrgID    string
	ClientID *uint
	Title    string
	Status   string
	Priority string
	Position int
	DueDate  time.Time
}

// Materialize expands every seed into its future occurrences relative
// to today. Seeds with a nil due date are skipped entirely.
func Materialize(seeds []Seed, today time.Time) []Instance {
	out := make([]Instance, 0)
	for _, seed := range seeds {
		out = append(out, expand(seed, today)...)
	}
	return out
}

func expand(seed Seed, today time.Time) []Instance {
	if seed.DueDate == nil {
		return nil
	}

	interval := seed.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	target := seed.Count
	if target <= 0 {
		target = DefaultCount
	}
	priority := seed.Priority
	if priority == "" {
		priority = "medium"
	}

	var out []Instance
	cursor := *seed.DueDate
	created := 0
	for created < target {
		switch seed.Rule {
		case RuleWeekly:
			cursor = cursor.AddDate(0, 0, 7*interval)
		case RuleMonthly:
			// Calendar-month increment: the day component carries
			// through, with AddDate's end-of-month rollover.
			cursor = cursor.AddDate(0, interval, 0)
		default:
			return out
		}
		if seed.Until != nil && cursor.After(*seed.Until) {
			return out
		}
		// Occurrences before today are skipped without counting toward
		// the target, so a seed anchored far in the past keeps stepping
		// one interval at a time until it reaches today. Bounded only
		// by the target count, the until bound, or the rule check.
		if cursor.Before(today) {
			continue
		}
		out = append(out, Instance{
			OrgID:    seed.OrgID,
			ClientID: seed.ClientID,
			Title:    seed.Title,
			Status:   "todo",
			Priority: priority,
			Position: 0,
			DueDate:  cursor,
		})
		created++
	}
	return out
}
