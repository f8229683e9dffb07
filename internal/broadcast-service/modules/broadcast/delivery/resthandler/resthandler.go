package resthandler

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/usecase"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

// RestHandler handler
type RestHandler struct {
	mw        interfaces.Middleware
	uc        usecase.BroadcastUsecase
	validator interfaces.Validator
}

// NewRestHandler create new rest handler
func NewRestHandler(uc usecase.BroadcastUsecase, mw interfaces.Middleware, validator interfaces.Validator) *RestHandler {
	return &RestHandler{
		uc: uc, mw: mw, validator: validator,
	}
}

// Mount handler with root "/"
// handling version in here
func (h *RestHandler) Mount(root *echo.Group) {
	broadcast := root.Group(helper.V1+"/broadcast", h.mw.HTTPBearerAuth())
	broadcast.POST("", h.createBroadcast, h.mw.HTTPRateLimit("create-broadcast", 10, 1*time.Hour))
	broadcast.GET("", h.getActiveBroadcasts)
	broadcast.POST("/join/:id", h.joinBroadcast, h.mw.HTTPRateLimit("join-broadcast", 30, 15*time.Minute))
}

func (h *RestHandler) createBroadcast(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "BroadcastDeliveryREST:CreateBroadcast")
	defer trace.Finish()

	body, _ := ioutil.ReadAll(c.Request().Body)
	if err := h.validator.ValidateDocument("broadcast/save", body); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	var payload domain.CreateBroadcastRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
	}
	if err := h.validator.ValidateStruct(&payload); err != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "Failed validate payload", err).JSON(c.Response())
	}

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	data, err := h.uc.CreateBroadcast(ctx, tokenClaim.Subject, &payload)
	if err != nil {
		if data != nil {
			// persisted but event publish failed, never hide the failure
			return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error(), data).JSON(c.Response())
		}
		return wrapper.NewHTTPResponse(http.StatusBadRequest, err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusCreated, "Broadcast created", data).JSON(c.Response())
}

func (h *RestHandler) getActiveBroadcasts(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "BroadcastDeliveryREST:GetActiveBroadcasts")
	defer trace.Finish()

	lng, errLng := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	lat, errLat := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if errLng != nil || errLat != nil {
		return wrapper.NewHTTPResponse(http.StatusBadRequest, "longitude and latitude query params are required").JSON(c.Response())
	}

	filter := domain.NearbyFilter{Longitude: lng, Latitude: lat}
	if radius := c.QueryParam("radius"); radius != "" {
		parsed, err := strconv.ParseFloat(radius, 64)
		if err != nil {
			return wrapper.NewHTTPResponse(http.StatusBadRequest, "radius query param must be numeric").JSON(c.Response())
		}
		filter.RadiusMeters = parsed
	}

	data, err := h.uc.GetActiveBroadcasts(ctx, &filter)
	if err != nil {
		return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Success", data).JSON(c.Response())
}

func (h *RestHandler) joinBroadcast(c echo.Context) error {
	trace, ctx := tracer.StartTraceWithContext(c.Request().Context(), "BroadcastDeliveryREST:JoinBroadcast")
	defer trace.Finish()

	tokenClaim := shared.ParseTokenClaimFromContext(ctx)
	data, err := h.uc.JoinBroadcast(ctx, c.Param("id"), tokenClaim.Subject)
	if err != nil {
		if err == usecase.ErrBroadcastNotFound {
			return wrapper.NewHTTPResponse(http.StatusNotFound, err.Error()).JSON(c.Response())
		}
		if data != nil {
			return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error(), data).JSON(c.Response())
		}
		return wrapper.NewHTTPResponse(http.StatusInternalServerError, err.Error()).JSON(c.Response())
	}

	return wrapper.NewHTTPResponse(http.StatusOK, "Joined broadcast", data).JSON(c.Response())
}
