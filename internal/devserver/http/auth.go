package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/climblog/internal/devserver/domain"
	"github.com/aussiebroadwan/climblog/internal/devserver/service"
	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type loginBody struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// HandleLogin exchanges credentials for an access token.
//
//	@Summary		Log in
//	@Description	Returns a 15 minute access token under the "Authentication Bearer token" key.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		climbsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	climbsdk.MessageResponse	"Username and password are required"
//	@Failure		401		{object}	climbsdk.MessageResponse	"Invalid username or password"
//	@Failure		429		{object}	climbsdk.MessageResponse
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := httpx.DecodeJSON(r, &body); err != nil || body.Username == nil || body.Password == nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.AuthService.Login(r.Context(), *body.Username, *body.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{climbsdk.TokenFieldDescriptive: token})
}

// HandleRegister creates an account and signs it in.
//
//	@Summary		Register
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		climbsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	climbsdk.RegisterResponse
//	@Failure		400		{object}	ErrorResponse				"Validation failed"
//	@Failure		409		{object}	climbsdk.MessageResponse	"Email or username already registered"
//	@Router			/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body climbsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeBadJSON(w)
		return
	}

	ctx := r.Context()
	user, token, err := h.AuthService.Register(ctx, service.RegisterInput{
		Username:     body.Username,
		Email:        body.Email,
		Password:     body.Password,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		SkillLevelID: body.SkillLevelID,
	})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteMessage(w, http.StatusConflict,
			"An account with this email already exists, please login or enter a different email.")
		return
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteMessage(w, http.StatusConflict, fmt.Sprintf(
			"An account with the username %s already exists. Please choose a different username.", body.Username))
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	out := toUser(user)
	if level, ok, err := h.AuthService.SkillLevel(ctx, user.SkillLevelID); err == nil && ok {
		sl := toSkillLevel(level)
		out.SkillLevel = &sl
	}

	httpx.WriteJSON(w, http.StatusCreated, climbsdk.RegisterResponse{
		Message: "User created successfully.",
		Token:   token,
		User:    out,
	})
}

// HandleLogout acknowledges a logout. Tokens are not revoked; they lapse
// on their own.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	climbsdk.MessageResponse
//	@Failure	401	{object}	map[string]string
//	@Router		/logout [get].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteMessage(w, http.StatusOK, "Successfully logged out, access token will expire shortly.")
}

// HandleDelete removes the signed-in account with its climbs and attempts.
//
//	@Summary	Delete account
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	201	{object}	climbsdk.MessageResponse
//	@Failure	401	{object}	map[string]string
//	@Router		/delete [delete].
func (h *AuthHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.AuthService)
	if !ok {
		return
	}

	if err := h.AuthService.DeleteAccount(r.Context(), user.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusCreated,
		"Your user account and all associated data has been deleted. Please join us again sometime.")
}

// currentUser loads the account behind the verified token. It writes the
// response itself when it returns false.
func currentUser(w http.ResponseWriter, r *http.Request, auth *service.AuthService) (domain.User, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{"msg": httpx.MsgMissingToken})
		return domain.User{}, false
	}

	user, err := auth.User(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeUnknownUser(w, id)
		return domain.User{}, false
	case err != nil:
		writeServiceError(w, r, err)
		return domain.User{}, false
	}
	return user, true
}
