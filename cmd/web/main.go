// @title           VibeNet Users API
// @version         1.0
// @description     Registration, one-time-password sign in, profiles and account deletion.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

package main

import "vibenet_backend/internal/app"

func main() {
	app.Run()
}
