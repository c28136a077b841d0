package repotypes

// LogFilter narrows a log query. Empty fields impose no constraint.
type LogFilter struct {
	Status  string
	Service string
	Method  string
}

type GroupCount struct {
	Name  string
	Count int64
}

type StatusCount struct {
	Status int
	Count  int64
}
