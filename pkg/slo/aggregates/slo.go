package aggregates

import "time"

type Threshold struct {
	Target        float64
	TargetDisplay string
	// Timeframe ends with a single unit character, for example 30d
	Timeframe string
}

type Query struct {
	Numerator   string
	Denominator string
}

// RawSLO is a SLO as returned by the monitoring provider.
// Query is nil for SLOs which are not ratio based (monitor SLOs for example).
type RawSLO struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Thresholds  []Threshold
	Query       *Query
}

type Objective struct {
	BudgetTarget float64
	DisplayName  string
	Index        int
}

// NormalizedSLO contains everything needed to render the target documents of one SLO.
type NormalizedSLO struct {
	ID                string
	DisplayName       string
	Description       string
	Datasource        string
	DatasourceProject string
	Project           string
	Kind              string
	ServiceName       string
	IsUniqueService   bool
	Good              string
	Total             string
	Objectives        []Objective
	WindowCount       string
	WindowUnit        string
}

type Export struct {
	ID         string
	CreatedAt  time.Time
	Converted  int
	Skipped    int
	Objectives int
	Documents  int
	Content    string
}
