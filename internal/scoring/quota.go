package scoring

import (
	"time"

	"soulcare/internal/model"
)

// DailyLimit is the maximum number of assessments a user may take per day.
const DailyLimit = 3

// ComputeQuota counts how many records in history fall on the same UTC
// calendar day as today and reports whether another assessment may begin.
// The day boundary is server-side UTC, so the cutoff does not drift with
// the device timezone. History order does not matter.
func ComputeQuota(history []model.AssessmentRecord, today time.Time) model.QuotaStatus {
	y, m, d := today.UTC().Date()

	count := 0
	for _, rec := range history {
		ry, rm, rd := rec.CreatedAt.UTC().Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}

	return model.QuotaStatus{
		CountToday:  count,
		CanTakeMore: count < DailyLimit,
	}
}
