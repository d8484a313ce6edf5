package domain

// LoginRequest is the credential payload for POST /auth/user-login.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginResponse is the payload returned on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterRequest is the payload for POST /auth/register. The phone number
// must have been verified through the OTP flow first.
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password"`
}
