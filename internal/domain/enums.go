package domain

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending:    true,
	TaskInProgress: true,
	TaskDone:       true,
	TaskBlocked:    true,
}

type Department string

const (
	DeptEngineering Department = "engineering"
	DeptDesign      Department = "design"
	DeptMarketing   Department = "marketing"
	DeptSales       Department = "sales"
	DeptHR          Department = "hr"
	DeptFinance     Department = "finance"
	DeptOperations  Department = "operations"
	DeptOther       Department = "other"
)

// ValidDepartments is the canonical set of accepted department strings.
var ValidDepartments = map[Department]bool{
	DeptEngineering: true,
	DeptDesign:      true,
	DeptMarketing:   true,
	DeptSales:       true,
	DeptHR:          true,
	DeptFinance:     true,
	DeptOperations:  true,
	DeptOther:       true,
}

// DateField names a schedulable date column on a project or task.
type DateField string

const (
	FieldStartDate DateField = "start_date"
	FieldEndDate   DateField = "end_date"
)
