// Package policy содержит чистые функции принятия решений о доступе.
// Функции не выполняют I/O и не имеют побочных эффектов: решение зависит
// только от вызывающего, ресурса и вида операции.
package policy

import "github.com/marcos/task-tracker-project/internal/domain"

// Reason описывает причину отказа. Причина попадает только в логи,
// наружу отдается обезличенный FORBIDDEN.
type Reason string

// Причины отказа
const (
	ReasonAdminOnly      Reason = "ADMIN_ONLY"      // операция доступна только администратору
	ReasonNotCreator     Reason = "NOT_CREATOR"     // вызывающий не является создателем задачи
	ReasonNotAssignee    Reason = "NOT_ASSIGNEE"    // вызывающий не назначен исполнителем
	ReasonNotSelf        Reason = "NOT_SELF"        // аккаунт можно менять только самому
	ReasonAdminProtected Reason = "ADMIN_PROTECTED" // аккаунты администраторов не удаляются
)

// Decision представляет результат проверки доступа
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// CanCreateTask разрешает создание задач только администраторам
func CanCreateTask(caller domain.Caller) Decision {
	if !caller.IsAdmin {
		return deny(ReasonAdminOnly)
	}
	return allow()
}

// CanEditTaskDetails разрешает изменение деталей задачи только ее создателю.
// Флаг администратора здесь не учитывается.
func CanEditTaskDetails(caller domain.Caller, task *domain.Task) Decision {
	if !task.IsCreator(caller.ID) {
		return deny(ReasonNotCreator)
	}
	return allow()
}

// CanAssignUsers разрешает назначение исполнителей только создателю задачи
func CanAssignUsers(caller domain.Caller, task *domain.Task) Decision {
	return CanEditTaskDetails(caller, task)
}

// CanDeleteTask разрешает удаление задачи только ее создателю
func CanDeleteTask(caller domain.Caller, task *domain.Task) Decision {
	return CanEditTaskDetails(caller, task)
}

// CanChangeTaskStatus разрешает смену статуса только исполнителям задачи.
// Создатель, не входящий в список исполнителей, статус менять не может.
func CanChangeTaskStatus(caller domain.Caller, task *domain.Task) Decision {
	if !task.IsAssignee(caller.ID) {
		return deny(ReasonNotAssignee)
	}
	return allow()
}

// CanEditAccount разрешает изменение аккаунта только его владельцу
func CanEditAccount(caller domain.Caller, target *domain.Account) Decision {
	if caller.ID != target.ID {
		return deny(ReasonNotSelf)
	}
	return allow()
}

// CanDeleteAccount разрешает удаление аккаунта администратору,
// при этом аккаунты администраторов защищены от удаления безусловно.
func CanDeleteAccount(caller domain.Caller, target *domain.Account) Decision {
	if !caller.IsAdmin {
		return deny(ReasonAdminOnly)
	}
	if target.IsAdmin {
		return deny(ReasonAdminProtected)
	}
	return allow()
}
