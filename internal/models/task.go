package models

// Task is a single entry in the list.
//
// Completed and OrderIndex are pointers because legacy rows may hold NULL in
// either column; use the Effective* accessors instead of dereferencing.
type Task struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Completed  *bool  `json:"completed"`
	OrderIndex *int64 `json:"orderIndex"`
	DueDate    *Date  `json:"dueDate,omitempty"`
}

// EffectiveOrder is the ordering key: orderIndex when set, otherwise the id.
// Every place that sorts or computes a max goes through this.
func (t Task) EffectiveOrder() int64 {
	if t.OrderIndex != nil {
		return *t.OrderIndex
	}
	return t.ID
}

// EffectiveCompleted coalesces a missing completed value to false.
func (t Task) EffectiveCompleted() bool {
	return t.Completed != nil && *t.Completed
}
