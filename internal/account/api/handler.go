package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/useraccounts/internal/account/models"
	"github.com/dmitrijs2005/useraccounts/internal/account/users"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserService is the account logic behind the HTTP resource.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int32) (models.User, error)
	Create(ctx context.Context, in models.NewUser) (models.User, error)
	Update(ctx context.Context, id int32, in models.UpdateUser) (models.User, error)
	Delete(ctx context.Context, id int32) error
	Login(ctx context.Context, id int32, password string) (*users.Session, error)
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// LoginRequest is the body of POST /users/login/:id.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, newUserResponse(u))
	}
	return success(c, http.StatusOK, out, "")
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	return success(c, http.StatusOK, newUserResponse(u), "")
}

func (h *UserHandler) Create(c echo.Context) error {
	var in models.NewUser
	if err := c.Bind(&in); err != nil {
		return failure(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid user input", "")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	u, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return errors.WithStack(err)
	}
	return success(c, http.StatusCreated, newUserResponse(u), "User created")
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var in models.UpdateUser
	if err := c.Bind(&in); err != nil {
		return failure(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid user input", "")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	u, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return errors.WithStack(err)
	}
	return success(c, http.StatusOK, newUserResponse(u), "User updated")
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}
	return success(c, http.StatusOK, nil, "User deleted")
}

// Login takes the password from a JSON body.
func (h *UserHandler) Login(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var in LoginRequest
	if err := c.Bind(&in); err != nil {
		return failure(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid login input", "")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	return h.login(c, id, in.Password)
}

// LoginBasic takes the password from HTTP Basic auth; the username part is
// ignored in favour of the path id.
func (h *UserHandler) LoginBasic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	_, password, ok := c.Request().BasicAuth()
	if !ok || password == "" {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="users"`)
		return common.ErrorUnauthorized
	}

	return h.login(c, id, password)
}

func (h *UserHandler) login(c echo.Context, id int32, password string) error {
	session, err := h.svc.Login(c.Request().Context(), id, password)
	if err != nil {
		return errors.WithStack(err)
	}
	return success(c, http.StatusOK, session, "Authenticated")
}

// Me returns the user behind the session token.
func (h *UserHandler) Me(c echo.Context) error {
	u, ok := c.Get(userContextKey).(models.User)
	if !ok {
		return common.ErrInvalidToken
	}
	return success(c, http.StatusOK, newUserResponse(u), "")
}

func HealthCheck(c echo.Context) error {
	return success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func pathID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(common.ErrorValidation, "invalid user id %q", c.Param("id"))
	}
	return int32(id), nil
}
