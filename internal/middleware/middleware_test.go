package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResolver struct {
	actors map[int64]models.Actor
	// second role of dual-role accounts
	alternates map[int64]models.Actor
	err        error
}

func (s stubResolver) ResolveActor(_ context.Context, userID int64) (models.Actor, error) {
	if s.err != nil {
		return nil, s.err
	}
	actor, ok := s.actors[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return actor, nil
}

func (s stubResolver) ResolveActorAs(ctx context.Context, userID int64, kind models.ActorKind) (models.Actor, error) {
	if alt, ok := s.alternates[userID]; ok && alt.Kind() == kind {
		return alt, nil
	}
	return s.ResolveActor(ctx, userID)
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "asap.test",
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT()
	student := &models.StudentActor{User: &models.User{ID: 1}, Student: &models.Student{ID: 10}}
	prof := &models.ProfessorActor{User: &models.User{ID: 2}, Prof: &models.Prof{ID: 20}}
	mw := NewAuthMiddleware(jwtService, stubResolver{actors: map[int64]models.Actor{1: student, 2: prof}})

	router := gin.New()
	router.GET("/me", mw.JWTAuth(), func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"kind": actor.Kind()})
	})
	router.GET("/students", mw.JWTAuth(), mw.RequireStudent(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/profs", mw.JWTAuth(), mw.RequireProfessor(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token := func(userID int64) string {
		pair, err := jwtService.GenerateTokenPair(userID, "x@univ.ac.kr")
		require.NoError(t, err)
		return "Bearer " + pair.AccessToken
	}

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{name: "missing header", path: "/me", wantCode: http.StatusUnauthorized, wantErr: dto.ErrorCodeUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer abc.def.ghi", wantCode: http.StatusUnauthorized, wantErr: dto.ErrorCodeInvalidToken},
		{name: "unknown user", path: "/me", header: token(99), wantCode: http.StatusUnauthorized, wantErr: dto.ErrorCodeInvalidToken},
		{name: "student ok", path: "/me", header: token(1), wantCode: http.StatusOK},
		{name: "student route", path: "/students", header: token(1), wantCode: http.StatusNoContent},
		{name: "professor on student route", path: "/students", header: token(2), wantCode: http.StatusForbidden, wantErr: dto.ErrorCodeForbidden},
		{name: "student on professor route", path: "/profs", header: token(1), wantCode: http.StatusForbidden, wantErr: dto.ErrorCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, w).Error.Code)
			}
		})
	}
}

func TestRequireKind_DualRole(t *testing.T) {
	jwtService := newJWT()
	both := &models.User{ID: 3, IsStudent: true, IsProf: true}
	flagOnly := &models.User{ID: 4, IsStudent: true, IsProf: true}
	mw := NewAuthMiddleware(jwtService, stubResolver{
		actors: map[int64]models.Actor{
			3: &models.StudentActor{User: both, Student: &models.Student{ID: 30}},
			4: &models.StudentActor{User: flagOnly, Student: &models.Student{ID: 40}},
		},
		alternates: map[int64]models.Actor{
			3: &models.ProfessorActor{User: both, Prof: &models.Prof{ID: 31}},
		},
	})

	kindHandler := func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"kind": actor.Kind()})
	}
	router := gin.New()
	router.GET("/students", mw.JWTAuth(), mw.RequireStudent(), kindHandler)
	router.GET("/profs", mw.JWTAuth(), mw.RequireProfessor(), kindHandler)

	call := func(path string, userID int64) *httptest.ResponseRecorder {
		pair, err := jwtService.GenerateTokenPair(userID, "x@univ.ac.kr")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("professor route sees the professor variant", func(t *testing.T) {
		w := call("/profs", 3)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"kind":"professor"}`, w.Body.String())
	})

	t.Run("student route keeps the student variant", func(t *testing.T) {
		w := call("/students", 3)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"kind":"student"}`, w.Body.String())
	})

	t.Run("professor flag without a profile is still forbidden", func(t *testing.T) {
		w := call("/profs", 4)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, w).Error.Code)
	})
}

func TestJWTAuth_InactiveAccount(t *testing.T) {
	jwtService := newJWT()
	mw := NewAuthMiddleware(jwtService, stubResolver{err: apperrors.ErrAccountDisabled})

	router := gin.New()
	router.GET("/me", mw.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	pair, err := jwtService.GenerateTokenPair(1, "x@univ.ac.kr")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeAccountInactive, decodeError(t, w).Error.Code)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{apperrors.ErrUnitNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("loading: %w", apperrors.ErrResearchNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled},
		{apperrors.ErrCapacityExceeded, http.StatusConflict, dto.ErrorCodeCapacityExceeded},
		{apperrors.ErrNotOwner, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewValidationError("bad", map[string]interface{}{"entries[0]": "x"}), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountInactive},
		{apperrors.ErrInvalidActivationToken, http.StatusBadRequest, dto.ErrorCodeInvalidToken},
		{fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIError_CarriesRowDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleAPIError(c, apperrors.NewValidationError("outcome batch rejected", map[string]interface{}{
		"entries[1]": "outcome \"X\" must be PASS, FAIL or empty",
	}))

	resp := decodeError(t, w)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "entries[1]")
}

type outcomeBody struct {
	Semester string `json:"semester" binding:"required,semester"`
	Period   int    `json:"period" binding:"period"`
}

func TestValidateRequest(t *testing.T) {
	router := gin.New()
	router.POST("/", ValidateRequest[outcomeBody](), func(c *gin.Context) {
		body, ok := ValidatedBody[outcomeBody](c)
		require.True(t, ok)
		c.JSON(http.StatusOK, body)
	})

	send := func(payload string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(payload)))
		return w
	}

	assert.Equal(t, http.StatusOK, send(`{"semester":"FALL","period":45}`).Code)

	w := send(`{"semester":"WINTER","period":50}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "semester")
	assert.Contains(t, details, "period")

	w = send(`{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w).Error.Code)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()), Recovery(zerolog.Nop()))
	router.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Error.Code)
}
