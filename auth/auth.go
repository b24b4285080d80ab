package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"mixmasters/globals"
	"mixmasters/structs"
	"mixmasters/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const TokenTTL = 12 * time.Hour

// Login exchanges the single shared admin password for a signed token.
// The password is compared verbatim; there is exactly one admin identity.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if globals.AdminPassword == "" {
		utils.RespondWithError(w, http.StatusInternalServerError, "ADMIN_PASSWORD is not configured")
		return
	}

	if body.Password == "" || body.Password != globals.AdminPassword {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := IssueToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

func IssueToken() (string, error) {
	now := time.Now()
	claims := &structs.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}
