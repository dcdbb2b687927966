package models

// StatusCount is the number of jobs in one status.
type StatusCount struct {
	Status JobStatus `json:"status" bson:"status"`
	Count  int64     `json:"count" bson:"count"`
}

// MonthlyCount is the number of jobs created in one calendar month.
type MonthlyCount struct {
	Year  int   `json:"year" bson:"year"`
	Month int   `json:"month" bson:"month"`
	Count int64 `json:"count" bson:"count"`
}

// JobStats is the statistics payload for one owner.
type JobStats struct {
	Stats        []StatusCount  `json:"stats"`
	Count        int            `json:"count"` // number of status groups
	MonthlyStats []MonthlyCount `json:"monthlyStats"`
}
