package resthandler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/domain"
	"github.com/meetnear/broadcast-service/internal/broadcast-service/modules/broadcast/usecase"
	"github.com/meetnear/broadcast-service/pkg/shared"
)

type mockUsecase struct {
	mock.Mock
}

func (m *mockUsecase) CreateBroadcast(ctx context.Context, hostUserID string, payload *domain.CreateBroadcastRequest) (*domain.Broadcast, error) {
	args := m.Called(ctx, hostUserID, payload)
	res, _ := args.Get(0).(*domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) GetActiveBroadcasts(ctx context.Context, filter *domain.NearbyFilter) ([]domain.Broadcast, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) JoinBroadcast(ctx context.Context, broadcastID, userID string) (*domain.Broadcast, error) {
	args := m.Called(ctx, broadcastID, userID)
	res, _ := args.Get(0).(*domain.Broadcast)
	return res, args.Error(1)
}
func (m *mockUsecase) ExpireBroadcasts(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateDocument(reference string, document []byte) error {
	args := m.Called(reference, document)
	return args.Error(0)
}
func (m *mockValidator) ValidateStruct(data interface{}) error {
	args := m.Called(data)
	return args.Error(0)
}

func newEchoContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	claim := &shared.TokenClaim{}
	claim.Subject = "user-1"
	req = req.WithContext(shared.SetToContext(req.Context(), shared.ContextKeyTokenClaim, claim))

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateBroadcastHandler(t *testing.T) {
	validBody := `{"title":"Morning run","activityType":"running","location":{"type":"Point","coordinates":[106.8,-6.2]},` +
		`"startTime":"2026-09-01T06:00:00Z","endTime":"2026-09-01T08:00:00Z"}`

	t.Run("Testcase #1: Positive", func(t *testing.T) {
		uc := new(mockUsecase)
		validator := new(mockValidator)
		validator.On("ValidateDocument", "broadcast/save", mock.Anything).Return(nil)
		validator.On("ValidateStruct", mock.Anything).Return(nil)
		uc.On("CreateBroadcast", mock.Anything, "user-1", mock.Anything).Return(&domain.Broadcast{
			ID: primitive.NewObjectID(), Title: "Morning run", HostUserID: "user-1",
		}, nil)

		handler := NewRestHandler(uc, nil, validator)

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast", validBody)
		assert.NoError(t, handler.createBroadcast(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Testcase #2: Negative, invalid payload", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateDocument", "broadcast/save", mock.Anything).Return(errors.New("title: String length must be greater than or equal to 3"))

		handler := NewRestHandler(new(mockUsecase), nil, validator)

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast", `{"title":"ab"}`)
		assert.NoError(t, handler.createBroadcast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Testcase #3: Negative, struct validation rejects payload", func(t *testing.T) {
		uc := new(mockUsecase)
		validator := new(mockValidator)
		validator.On("ValidateDocument", "broadcast/save", mock.Anything).Return(nil)
		validator.On("ValidateStruct", mock.Anything).Return(errors.New("ActivityType: field is required"))

		handler := NewRestHandler(uc, nil, validator)

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast", validBody)
		assert.NoError(t, handler.createBroadcast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "CreateBroadcast", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Testcase #4: Persisted but publish failed", func(t *testing.T) {
		uc := new(mockUsecase)
		validator := new(mockValidator)
		validator.On("ValidateDocument", "broadcast/save", mock.Anything).Return(nil)
		validator.On("ValidateStruct", mock.Anything).Return(nil)
		uc.On("CreateBroadcast", mock.Anything, "user-1", mock.Anything).Return(&domain.Broadcast{
			ID: primitive.NewObjectID(),
		}, errors.New("broadcast created but notification publish failed: broker unreachable"))

		handler := NewRestHandler(uc, nil, validator)

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast", validBody)
		assert.NoError(t, handler.createBroadcast(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetActiveBroadcastsHandler(t *testing.T) {
	t.Run("Testcase #1: Positive", func(t *testing.T) {
		uc := new(mockUsecase)
		uc.On("GetActiveBroadcasts", mock.Anything, mock.MatchedBy(func(filter *domain.NearbyFilter) bool {
			return filter.Longitude == 106.8 && filter.Latitude == -6.2 && filter.RadiusMeters == 1000
		})).Return([]domain.Broadcast{}, nil)

		handler := NewRestHandler(uc, nil, new(mockValidator))

		c, rec := newEchoContext(http.MethodGet, "/v1/broadcast?longitude=106.8&latitude=-6.2&radius=1000", "")
		assert.NoError(t, handler.getActiveBroadcasts(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Testcase #2: Negative, missing coordinates", func(t *testing.T) {
		uc := new(mockUsecase)
		handler := NewRestHandler(uc, nil, new(mockValidator))

		c, rec := newEchoContext(http.MethodGet, "/v1/broadcast", "")
		assert.NoError(t, handler.getActiveBroadcasts(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "GetActiveBroadcasts", mock.Anything, mock.Anything)
	})

	t.Run("Testcase #3: Negative, radius not numeric", func(t *testing.T) {
		handler := NewRestHandler(new(mockUsecase), nil, new(mockValidator))

		c, rec := newEchoContext(http.MethodGet, "/v1/broadcast?longitude=106.8&latitude=-6.2&radius=near", "")
		assert.NoError(t, handler.getActiveBroadcasts(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJoinBroadcastHandler(t *testing.T) {
	t.Run("Testcase #1: Positive", func(t *testing.T) {
		id := primitive.NewObjectID()
		uc := new(mockUsecase)
		uc.On("JoinBroadcast", mock.Anything, id.Hex(), "user-1").Return(&domain.Broadcast{
			ID: id, Participants: []string{"user-1"},
		}, nil)

		handler := NewRestHandler(uc, nil, new(mockValidator))

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast/join/"+id.Hex(), "")
		c.SetParamNames("id")
		c.SetParamValues(id.Hex())
		assert.NoError(t, handler.joinBroadcast(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Testcase #2: Negative, broadcast not found", func(t *testing.T) {
		uc := new(mockUsecase)
		uc.On("JoinBroadcast", mock.Anything, "missing-id", "user-1").Return(nil, usecase.ErrBroadcastNotFound)

		handler := NewRestHandler(uc, nil, new(mockValidator))

		c, rec := newEchoContext(http.MethodPost, "/v1/broadcast/join/missing-id", "")
		c.SetParamNames("id")
		c.SetParamValues("missing-id")
		assert.NoError(t, handler.joinBroadcast(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
