package employment

import (
	"sort"
	"time"

	"clearhire/internal/identity"
)

// Status is the outcome of an employment history analysis.
type Status string

const (
	StatusVerified Status = "VERIFIED"
	StatusPartial  Status = "PARTIAL"
	StatusFailed   Status = "FAILED"
	StatusSkipped  Status = "SKIPPED"
)

// Fixed outcome scores. Identity failure dominates; overlaps and experience
// mismatches are review hints, not verdicts.
const (
	scoreVerified = 100
	scorePartial  = 70
	scoreFailed   = 30
	scoreSkipped  = 100
)

// Flags raised by Analyze.
const (
	FlagOverlappingEmployment = "OVERLAPPING_EMPLOYMENT"
	FlagExperienceMismatch    = "EXPERIENCE_MISMATCH"
	FlagIdentityMismatch      = "IDENTITY_MISMATCH"
)

// experienceToleranceYears is the allowed variance between claimed and
// verified experience before EXPERIENCE_MISMATCH is raised.
const experienceToleranceYears = 1

// Overlap reports one pair of intervals that intersect, with the
// intersection window.
type Overlap struct {
	Employer1    string `json:"employer1"`
	Employer2    string `json:"employer2"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

// Summary describes the parsed employment timeline.
type Summary struct {
	TotalJobs             int        `json:"total_jobs"`
	TotalExperienceYears  int        `json:"total_experience_years"`
	TotalExperienceMonths int        `json:"total_experience_months"`
	HasOverlaps           bool       `json:"has_overlaps"`
	OverlappingPeriods    []Overlap  `json:"overlapping_periods"`
	CurrentEmployer       string     `json:"current_employer,omitempty"`
	Employers             []Employer `json:"employers"`
	ParseFlags            []string   `json:"parse_flags,omitempty"`
}

// IdentityMatch captures agreement between the provider's reported identity
// and the trusted identity fields.
type IdentityMatch struct {
	NameMatch bool `json:"name_match"`
	NameScore int  `json:"name_score"`
	DOBMatch  bool `json:"dob_match"`
}

// Experience compares claimed against verified experience.
type Experience struct {
	ActualYears  int  `json:"actual_years"`
	ClaimedYears int  `json:"claimed_years"`
	Mismatch     bool `json:"mismatch"`
}

// Analysis is the full result of Analyze.
type Analysis struct {
	Status        Status        `json:"status"`
	Score         int           `json:"score"`
	Flags         []string      `json:"flags"`
	IdentityMatch IdentityMatch `json:"identity_match"`
	Employment    Summary       `json:"employment"`
	Experience    Experience    `json:"experience"`
}

// ReportedIdentity is the name and date of birth the employment provider has
// on file for the account holder.
type ReportedIdentity struct {
	Name string
	DOB  string
}

// TrustedIdentity is the identity-document-verified name and date of birth
// the provider data is checked against.
type TrustedIdentity struct {
	Name string
	DOB  string
}

// Summarize parses records into a timeline and reports overlaps and merged
// total tenure as of today.
func Summarize(records []Record, today time.Time) Summary {
	timeline, parseFlags := buildTimeline(records, today)
	if len(timeline) == 0 {
		return Summary{OverlappingPeriods: []Overlap{}, Employers: []Employer{}, ParseFlags: parseFlags}
	}

	overlaps := detectOverlaps(timeline)
	totalMonths := mergedTenureMonths(timeline)

	employers := make([]Employer, 0, len(timeline))
	currentEmployer := ""
	for _, iv := range timeline {
		emp := Employer{
			Name:      iv.Name,
			StartDate: iv.Start.Format(DateLayout),
			IsCurrent: iv.IsCurrent,
		}
		if !iv.IsCurrent {
			emp.EndDate = iv.End.Format(DateLayout)
		} else {
			currentEmployer = iv.Name
		}
		employers = append(employers, emp)
	}

	return Summary{
		TotalJobs:             len(timeline),
		TotalExperienceYears:  totalMonths / 12,
		TotalExperienceMonths: totalMonths,
		HasOverlaps:           len(overlaps) > 0,
		OverlappingPeriods:    overlaps,
		CurrentEmployer:       currentEmployer,
		Employers:             employers,
		ParseFlags:            parseFlags,
	}
}

// detectOverlaps reports every pair of intervals that intersect. Pairwise
// comparison is fine at the expected scale (a handful of jobs per candidate).
func detectOverlaps(timeline []Interval) []Overlap {
	overlaps := []Overlap{}
	for i, job1 := range timeline {
		for _, job2 := range timeline[i+1:] {
			if !periodsOverlap(job1, job2) {
				continue
			}
			overlaps = append(overlaps, Overlap{
				Employer1:    job1.Name,
				Employer2:    job2.Name,
				OverlapStart: maxTime(job1.Start, job2.Start).Format(DateLayout),
				OverlapEnd:   minTime(job1.End, job2.End).Format(DateLayout),
			})
		}
	}
	return overlaps
}

// periodsOverlap is the closed-interval intersection test:
// start1 <= end2 && start2 <= end1.
func periodsOverlap(a, b Interval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// mergedTenureMonths sorts intervals by start, merges any that overlap or
// touch, and sums month deltas across the merged runs. Overlapping jobs are
// therefore never double-counted.
func mergedTenureMonths(timeline []Interval) int {
	sorted := make([]Interval, len(timeline))
	copy(sorted, timeline)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	current := sorted[0]
	total := 0
	for _, job := range sorted[1:] {
		if !job.Start.After(current.End) {
			if job.End.After(current.End) {
				current.End = job.End
			}
			continue
		}
		total += monthsBetween(current.Start, current.End)
		current = job
	}
	total += monthsBetween(current.Start, current.End)

	return total
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Analyze combines identity agreement, overlap detection, and experience
// comparison into a single outcome.
//
// A fresher (claimedYears < 1) bypasses the analysis entirely: the step is
// skippable, the component is neutral, and no flags are raised. Otherwise
// the outcome is FAILED when the provider identity does not match the
// trusted one, PARTIAL when overlaps or an experience mismatch are present,
// and VERIFIED when clean.
func Analyze(records []Record, reported ReportedIdentity, trusted TrustedIdentity, claimedYears int, today time.Time) Analysis {
	if claimedYears < 1 {
		return Analysis{
			Status:     StatusSkipped,
			Score:      scoreSkipped,
			Flags:      []string{},
			Employment: Summarize(records, today),
			Experience: Experience{ClaimedYears: claimedYears},
		}
	}

	nameScore := identity.FuzzyNameMatch(reported.Name, trusted.Name)
	match := IdentityMatch{
		NameMatch: nameScore >= identity.MatchThreshold,
		NameScore: nameScore,
		DOBMatch:  identity.ExactMatch(reported.DOB, trusted.DOB),
	}
	identityOK := match.NameMatch && match.DOBMatch

	summary := Summarize(records, today)

	actualYears := summary.TotalExperienceMonths / 12
	mismatch := abs(actualYears-claimedYears) > experienceToleranceYears

	flags := []string{}
	if summary.HasOverlaps {
		flags = append(flags, FlagOverlappingEmployment)
	}
	if mismatch {
		flags = append(flags, FlagExperienceMismatch)
	}
	if !identityOK {
		flags = append(flags, FlagIdentityMismatch)
	}
	flags = append(flags, summary.ParseFlags...)

	var status Status
	var score int
	switch {
	case !identityOK:
		status, score = StatusFailed, scoreFailed
	case summary.HasOverlaps || mismatch:
		status, score = StatusPartial, scorePartial
	default:
		status, score = StatusVerified, scoreVerified
	}

	return Analysis{
		Status:        status,
		Score:         score,
		Flags:         flags,
		IdentityMatch: match,
		Employment:    summary,
		Experience: Experience{
			ActualYears:  actualYears,
			ClaimedYears: claimedYears,
			Mismatch:     mismatch,
		},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
