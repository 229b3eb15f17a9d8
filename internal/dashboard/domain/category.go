package domain

import "time"

// Category is one workstream of the event.
//
// Progress and Status are the values the category was created with. Once tasks
// reference the category they are replaced on every read by the derived values
// (see package progress) and are never written back.
type Category struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Phase              Phase     `json:"phase"`
	ResponsiblePersons []string  `json:"responsible_persons"`
	Progress           int       `json:"progress"`
	Status             Status    `json:"status"`
	DueDate            time.Time `json:"due_date"`
	Priority           Priority  `json:"priority"`
}

// Clone returns a copy that shares no slices with c.
func (c Category) Clone() Category {
	next := c
	next.ResponsiblePersons = append([]string(nil), c.ResponsiblePersons...)
	return next
}
