package domain

// TokenPair is what login and refresh return: the short-lived access JWT
// and the long-lived refresh JWT.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
