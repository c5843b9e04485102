package domain

// Значение по умолчанию для описательных полей аккаунта
const Unspecified = "unspecified"

// Account представляет зарегистрированную учетную запись
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash,omitempty"` // никогда не отдается наружу
	IsAdmin      bool   `json:"is_admin"`
	Role         string `json:"role"`
	Team         string `json:"team"`
}

// Sanitized возвращает копию аккаунта без учетных данных
func (a *Account) Sanitized() *Account {
	c := *a
	c.PasswordHash = ""
	return &c
}

// AccountSummary представляет сокращенную информацию об аккаунте (используется в списках задач)
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// Summary возвращает сокращенное представление аккаунта
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Role:     a.Role,
		Team:     a.Team,
	}
}

// Caller представляет идентичность, извлеченную из аутентифицированного запроса
type Caller struct {
	ID      string
	IsAdmin bool
}
