package domain

import "time"

type NamedCount struct {
	Name  string
	Value int
}

type HourCount struct {
	Label string
	Start time.Time
	Count int
}

type Stats struct {
	TotalLogs           int
	MethodDistribution  []NamedCount
	StatusDistribution  []NamedCount
	ServiceDistribution []NamedCount
	TimeDistribution    []HourCount
	SuccessRate         int
	ErrorRate           int
}
