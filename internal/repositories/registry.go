package repositories

// Container groups the stateless repositories.
type Container struct {
	User         UserRepository
	OTP          OTPRepository
	RefreshToken RefreshTokenRepository
	Interest     InterestRepository
}

func NewContainer() *Container {
	return &Container{
		User:         NewUserRepository(),
		OTP:          NewOTPRepository(),
		RefreshToken: NewRefreshTokenRepository(),
		Interest:     NewInterestRepository(),
	}
}
