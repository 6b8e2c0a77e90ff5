package handler

type ContextKey string

var (
	ScheduleCtx ContextKey = "schedule"
)
