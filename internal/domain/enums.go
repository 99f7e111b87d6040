package domain

// Role represents the authorization level of a user.
// The store distinguishes exactly two levels: managers see and mutate
// everything, staff are scoped to their own records.
type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleStaff:
		return true
	}
	return false
}

func (r Role) IsManager() bool {
	return r == RoleManager
}

// TaskStatus represents the lifecycle state of a task.
// The transition is one-way: pending tasks move to completed and never back.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	}
	return false
}

// ClockDirection is the direction of a time-clock punch.
type ClockDirection string

const (
	ClockIn  ClockDirection = "in"
	ClockOut ClockDirection = "out"
)

func (d ClockDirection) String() string { return string(d) }

func (d ClockDirection) IsValid() bool {
	switch d {
	case ClockIn, ClockOut:
		return true
	}
	return false
}
