// internal/domain/user/dto.go
package user

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type Profile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginStatus struct {
	UserEmail    string `json:"user_email"`
	UserRole     string `json:"user_role"`
	LoginTime    string `json:"login_time"`
	CustomerCode string `json:"customer_code"`
}
