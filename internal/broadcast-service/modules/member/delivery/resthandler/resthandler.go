package resthandler

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/member/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

// RestHandler handler
type RestHandler struct {
	uc        usecase.MemberUsecase
	validator interfaces.Validator
}

// NewRestHandler create new rest handler
func NewRestHandler(uc usecase.MemberUsecase, validator interfaces.Validator) *RestHandler {
	return &RestHandler{
		uc: uc, validator: validator,
	}
}

// Mount handler with root "/"
// register and login stay public, everything else in this service requires bearer
func (h *RestHandler) Mount(root *echo.Group) {
	member := root.Group(helper.V1 + "/member")
	member.POST("/register", h.register)
	member.POST("/login", h.login)
}

func (h *RestHandler) register(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "MemberDeliveryREST:Register")
	defer trace.Finish()

	body, _ := ioutil.ReadAll(c.Request().Body)
	if err := h.validator.ValidateDocument("member/register", body); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	var payload domain.RegisterRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	data, err := h.uc.Register(ctx, &payload)
	if err != nil {
		if err == usecase.ErrEmailAlreadyRegistered {
			return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
		}
		return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusCreated, "Member registered", data).JSON(c.Response())
}

func (h *RestHandler) login(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "MemberDeliveryREST:Login")
	defer trace.Finish()

	body, _ := ioutil.ReadAll(c.Request().Body)
	if err := h.validator.ValidateDocument("member/login", body); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	var payload domain.LoginRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	data, err := h.uc.Login(ctx, &payload)
	if err != nil {
		if err == usecase.ErrWrongCredentials {
			return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
		}
		return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Login success", data).JSON(c.Response())
}
