package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	Usuario   UserResponse `json:"usuario"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	Email       string  `json:"email"`
	Tipo        string  `json:"tipo"`
	Ativo       bool    `json:"ativo"`
	UltimoLogin *string `json:"ultimo_login,omitempty"`
}
