// Package jwt provides RS256 JSON Web Token utilities for the Fern API.
//
// The jwt package handles token signing, validation, and claims
// extraction for authentication.
//
// # Token Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "api.fernhq.app",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    UserID:   user.ID,
//	    Email:    user.Email,
//	    Username: user.Username,
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// # Claims
//
// Standard JWT claims are supported alongside the application fields:
//
//	type Claims struct {
//	    Issuer    string // iss
//	    Subject   string // sub
//	    ExpiresAt int64  // exp (unix seconds)
//	    IssuedAt  int64  // iat
//	    UserID    string
//	    Email     string
//	    Username  string
//	}
//
// # Key Management
//
// GenerateKeyPair writes a fresh RSA key pair in PEM form, which is useful
// for local development and tests.
package jwt
