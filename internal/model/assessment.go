package model

import "time"

// StressLevel is the three-band classification of an assessment score.
type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// AssessmentRecord is one completed stress assessment. Immutable once created.
type AssessmentRecord struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	UserID      string      `json:"userId" bson:"userId"`
	Score       int         `json:"score" bson:"score"`
	StressLevel StressLevel `json:"stressLevel" bson:"stressLevel"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

// QuotaStatus reports how many assessments a user has taken today and
// whether another may begin. The daily cap is three.
type QuotaStatus struct {
	CountToday  int  `json:"countToday"`
	CanTakeMore bool `json:"canTakeMore"`
}
