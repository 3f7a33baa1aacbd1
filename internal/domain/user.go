package domain

// User — профиль пользователя магазина.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// Role возвращает роль для отображения: admin для staff, иначе user.
func (u User) Role() string {
	if u.IsStaff {
		return "admin"
	}
	return "user"
}

// Registration — данные формы регистрации.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginRequest — логин и пароль.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials — пара bearer-токенов сессии.
type Credentials struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// ProfileUpdate — частичное обновление профиля (PATCH /auth/profile/).
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}
