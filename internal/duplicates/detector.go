// Package duplicates finds near-duplicate headlines published on the same day.
package duplicates

import (
	"time"

	"newsvol/internal/domain"
)

// Scorer returns a 0-100 similarity for two titles.
type Scorer func(a, b string) float64

// Detect groups records by published day within [start, end], compares
// every unordered pair of same-day titles and counts pairs scoring at least
// threshold. Records without a published date or outside the range are
// dropped. The count series always holds one entry per day of the range.
func Detect(records []domain.HeadlineRecord, start, end time.Time, threshold int) (domain.DuplicateReport, error) {
	return DetectWith(TokenSortRatio, records, start, end, threshold)
}

// DetectWith is Detect with a caller-supplied scorer.
func DetectWith(score Scorer, records []domain.HeadlineRecord, start, end time.Time, threshold int) (domain.DuplicateReport, error) {
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return domain.DuplicateReport{}, &domain.InvalidRangeError{Start: start, End: end}
	}
	if err := domain.ValidateThreshold(threshold); err != nil {
		return domain.DuplicateReport{}, err
	}
	if len(records) == 0 {
		return domain.DuplicateReport{}, &domain.NoDataError{Source: "news", Start: start, End: end}
	}

	groups := groupByDay(records, start, end)
	days := domain.DaysBetween(start, end)

	report := domain.DuplicateReport{
		Start:     start,
		End:       end,
		Threshold: threshold,
		Counts:    make([]domain.DailyCount, 0, len(days)),
		Matches:   []domain.SimilarityMatch{},
	}
	cutoff := float64(threshold)
	for _, day := range days {
		group := groups[day]
		count := 0
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				s := score(group[i].Title, group[j].Title)
				if s < cutoff {
					continue
				}
				count++
				report.Matches = append(report.Matches, domain.SimilarityMatch{
					Date:   day,
					First:  group[i],
					Second: group[j],
					Score:  s,
				})
			}
		}
		report.Counts = append(report.Counts, domain.DailyCount{Date: day, Count: count})
	}
	return report, nil
}

func groupByDay(records []domain.HeadlineRecord, start, end time.Time) map[time.Time][]domain.HeadlineRecord {
	groups := make(map[time.Time][]domain.HeadlineRecord)
	for _, r := range records {
		if r.Published.IsZero() {
			continue
		}
		day := domain.Day(r.Published)
		if day.Before(start) || day.After(end) {
			continue
		}
		groups[day] = append(groups[day], r)
	}
	return groups
}
