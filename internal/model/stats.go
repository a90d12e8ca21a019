package model

// Stats is derived on every read and never stored.
type Stats struct {
	TotalLists   int `json:"totalLists"`
	TotalTasks   int `json:"totalTasks"`
	Completed    int `json:"completed"`
	PendingTasks int `json:"pendingTasks"`
}
