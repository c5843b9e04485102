package domain

// TaskStatus представляет статус задачи
type TaskStatus string

// Возможные статусы задачи
const (
	StatusPending    TaskStatus = "pending"     // задача создана и еще не взята в работу
	StatusInProgress TaskStatus = "in-progress" // задача в работе
	StatusPaused     TaskStatus = "paused"      // работа приостановлена
	StatusDone       TaskStatus = "done"        // задача завершена
)

// Valid проверяет, что статус входит в допустимый набор.
// Порядок переходов не ограничивается: исполнитель может выставить
// любой допустимый статус независимо от текущего.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusPaused, StatusDone:
		return true
	default:
		return false
	}
}

// Task представляет задачу с одним создателем и исполнителями
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	CreatorID   string     `json:"creator_id"`
	AssigneeIDs []string   `json:"assignee_ids"`
}

// IsCreator проверяет, является ли пользователь создателем задачи
func (t *Task) IsCreator(accountID string) bool {
	return t.CreatorID == accountID
}

// IsAssignee проверяет, назначен ли пользователь исполнителем задачи
func (t *Task) IsAssignee(accountID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// TaskWithAssignees представляет задачу вместе с данными исполнителей
type TaskWithAssignees struct {
	Task
	Assignees []AccountSummary `json:"assignees"`
}
