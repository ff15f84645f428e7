package domain

// Session — состояние покупательской сессии, переживающее перезапуск клиента.
type Session struct {
	IsLoggedIn bool
	Email      string
	Name       string
}

// LoggedOutSession возвращает сессию в состоянии по умолчанию.
func LoggedOutSession() Session {
	return Session{}
}

// AdminUser — отображаемая часть администратора из ответа аутентификации.
type AdminUser struct {
	Name string
	Role string
}

// AdminCredential — повышенные учетные данные администратора.
// Отдельная сущность от Session: живет своим жизненным циклом.
type AdminCredential struct {
	Token string // opaque bearer
	User  AdminUser
}

func NewAdminCredential(token string, user AdminUser) *AdminCredential {
	return &AdminCredential{
		Token: token,
		User:  user,
	}
}
