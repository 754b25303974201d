package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rems-service/internal/adapters/codestore"
	"rems-service/internal/adapters/memstore"
	"rems-service/internal/adapters/sessionfile"
	token_adapter "rems-service/internal/adapters/token"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/filter"
	"rems-service/internal/core/port"
	"rems-service/internal/core/usecase"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields port.Fields)             {}
func (nopLogger) Warn(msg string, fields port.Fields)             {}
func (nopLogger) Error(msg string, err error, fields port.Fields) {}
func (nopLogger) Debug(msg string, fields port.Fields)            {}
func (n nopLogger) WithFields(fields port.Fields) port.LoggerPort { return n }

type fixture struct {
	server *httptest.Server
	store  *memstore.PropertyStore
	codes  *codestore.CodeStore
	engine *filter.Engine
}

func apiSeed() []domain.Property {
	return []domain.Property{
		{ID: "1", Title: "Căn hộ Quận 2", Location: "Quận 2, TP.HCM", Price: 1_500_000_000,
			Bedrooms: 2, Bathrooms: 2, Type: "Căn hộ", Status: domain.StatusForSale,
			ImageURL: "/img/1.jpg", Images: []string{"/img/1.jpg"}, YearBuilt: 2019},
		{ID: "2", Title: "Biệt thự Thảo Điền", Location: "Quận 2, TP.HCM", Price: 12_000_000_000,
			Bedrooms: 5, Bathrooms: 4, Type: "Biệt thự", Status: domain.StatusForSale,
			ImageURL: "/img/2.jpg", YearBuilt: 2015},
		{ID: "3", Title: "Nhà riêng cho thuê", Location: "Quận 7, TP.HCM", Price: 6_000_000_000,
			Bedrooms: 3, Bathrooms: 3, Type: "Nhà riêng", Status: domain.StatusForRent,
			ImageURL: "/img/3.jpg", YearBuilt: 2021},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.NewPropertyStore(apiSeed(), nopLogger{})
	engine := filter.NewEngine(store, nopLogger{})
	codes := codestore.NewCodeStore()

	sessions, err := sessionfile.NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	tokens, err := token_adapter.NewTokenService("test-signing-key")
	require.NoError(t, err)

	requestCode := usecase.NewRequestResetCodeUseCase(codes, time.Millisecond, time.Minute)
	handlers := Handlers{
		Search: NewSearchHandlers(
			usecase.NewSearchPropertiesUseCase(engine),
			usecase.NewUpdateFiltersUseCase(engine),
			usecase.NewResetFiltersUseCase(engine),
			usecase.NewGetFilterOptionsUseCase(engine),
		),
		Property: NewPropertyHandlers(
			usecase.NewGetPropertyDetailsUseCase(store),
			usecase.NewAddPropertyUseCase(store, nil),
		),
		Auth: NewAuthHandlers(
			usecase.NewLoginUserUseCase(sessions, tokens, time.Millisecond, time.Hour),
			usecase.NewRegisterUserUseCase(sessions, tokens, time.Millisecond, time.Hour),
			usecase.NewLogoutUserUseCase(sessions),
			usecase.NewRestoreSessionUseCase(sessions),
		),
		Recovery: NewRecoveryHandlers(
			requestCode,
			usecase.NewResendResetCodeUseCase(requestCode, codes),
			usecase.NewVerifyResetCodeUseCase(codes),
			usecase.NewResetPasswordUseCase(codes, codes),
		),
	}

	srv := NewServer("0", []string{"http://localhost:3000"}, handlers, nopLogger{})
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)

	return &fixture{server: ts, store: store, codes: codes, engine: engine}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_SearchProperties(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/properties", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[SearchResponse](t, resp)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, "default", body.Sort)
	assert.Equal(t, [2]float64{0, domain.PriceCeiling}, body.Filters.PriceRange)
	require.Len(t, body.Data, 3)
	assert.Equal(t, "1", body.Data[0].ID)
	// The gallery falls back to the primary image when none is stored.
	assert.Equal(t, []string{"/img/2.jpg"}, body.Data[1].Images)
}

func TestAPI_SearchProperties_URLParamsSeedTheFilters(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/properties?type=rent&query=nh%C3%A0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[SearchResponse](t, resp)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "3", body.Data[0].ID)
	assert.Equal(t, "for_rent", body.Filters.Status)
	assert.Equal(t, "nhà", body.Filters.SearchQuery)

	// The merge is sticky: a later plain request sees the same state.
	resp = f.do(t, http.MethodGet, "/api/v1/properties", nil)
	body = decode[SearchResponse](t, resp)
	assert.Equal(t, 1, body.Total)
}

func TestAPI_SearchProperties_Sorting(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/properties?sort=price-desc", nil)
	body := decode[SearchResponse](t, resp)

	require.Equal(t, 3, body.Total)
	assert.Equal(t, "2", body.Data[0].ID)
	assert.Equal(t, "3", body.Data[1].ID)
	assert.Equal(t, "1", body.Data[2].ID)
}

func TestAPI_UpdateAndResetFilters(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPut, "/api/v1/filters", UpdateFiltersRequest{
		PriceRange: &[2]float64{2_000_000_000, 10_000_000_000},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	criteria := decode[FilterCriteriaResponse](t, resp)
	assert.Equal(t, [2]float64{2_000_000_000, 10_000_000_000}, criteria.PriceRange)

	resp = f.do(t, http.MethodGet, "/api/v1/properties", nil)
	body := decode[SearchResponse](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "3", body.Data[0].ID)

	resp = f.do(t, http.MethodDelete, "/api/v1/filters", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	criteria = decode[FilterCriteriaResponse](t, resp)
	assert.Equal(t, [2]float64{0, domain.PriceCeiling}, criteria.PriceRange)
}

func TestAPI_UpdateFilters_RejectsInvertedPriceRange(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPut, "/api/v1/filters", UpdateFiltersRequest{
		PriceRange: &[2]float64{10, 5},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_UpdateFilters_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	status := "listed"

	resp := f.do(t, http.MethodPut, "/api/v1/filters", UpdateFiltersRequest{Status: &status})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_GetFilterOptions(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/filters/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	options := decode[FilterOptionsResponse](t, resp)
	assert.Equal(t, 3, options.Count)
	assert.Equal(t, []string{"Quận 2", "Quận 7"}, options.Localities)
	assert.Equal(t, 1_500_000_000.0, options.PriceMin)
	assert.Equal(t, 12_000_000_000.0, options.PriceMax)
}

func TestAPI_PropertyDetails(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/properties/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[PropertyResponse](t, resp)
	assert.Equal(t, "Biệt thự Thảo Điền", body.Title)

	resp = f.do(t, http.MethodGet, "/api/v1/properties/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_CreateProperty(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/properties", CreatePropertyRequest{
		Title:    "Nhà phố mới",
		Location: "Quận 10, TP.HCM",
		Price:    4_000_000_000,
		Type:     "Nhà riêng",
		Status:   "for_sale",
		Images:   []string{"/img/new-1.jpg", "/img/new-2.jpg"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[PropertyResponse](t, resp)
	assert.Equal(t, "4", body.ID)
	assert.Equal(t, "/img/new-1.jpg", body.ImageURL)

	// The new listing is part of subsequent searches.
	search := decode[SearchResponse](t, f.do(t, http.MethodGet, "/api/v1/properties", nil))
	assert.Equal(t, 4, search.Total)
}

func TestAPI_CreateProperty_ValidationFailure(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/properties", CreatePropertyRequest{
		Title: "No images at all",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[ErrorResponse](t, resp)
	assert.NotEmpty(t, errBody.Error)
}

func TestAPI_LoginFlow(t *testing.T) {
	f := newFixture(t)

	// Nobody is signed in at startup.
	resp := f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "linh@example.com",
		Password: "any-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	session := decode[SessionResponse](t, resp)
	assert.Equal(t, "Linh", session.Name)
	assert.NotEmpty(t, session.Token)

	// The session survives into subsequent requests.
	resp = f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	restored := decode[SessionResponse](t, resp)
	assert.Equal(t, "linh@example.com", restored.Email)
	assert.Empty(t, restored.Token)

	resp = f.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Register(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Name:     "Nguyễn Linh",
		Email:    "linh@example.com",
		Password: "password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	session := decode[SessionResponse](t, resp)
	assert.Equal(t, "Nguyễn Linh", session.Name)
	assert.NotEmpty(t, session.Token)

	// Registration signs the user in immediately.
	resp = f.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	restored := decode[SessionResponse](t, resp)
	assert.Equal(t, "linh@example.com", restored.Email)
}

func TestAPI_Login_RejectsMalformedEmail(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "not-an-email",
		Password: "password",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_RecoveryFlow(t *testing.T) {
	f := newFixture(t)

	// Verification and resend need a pending attempt.
	resp := f.do(t, http.MethodPost, "/api/v1/recovery/verify", VerifyCodeRequest{Code: "1234"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/v1/recovery/code/resend", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/v1/recovery/code", RequestCodeRequest{Email: "linh@example.com"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	issued := decode[RequestCodeResponse](t, resp)
	assert.True(t, issued.ExpiresAt.After(time.Now()))

	resp = f.do(t, http.MethodPost, "/api/v1/recovery/verify", VerifyCodeRequest{Code: "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/v1/recovery/verify", VerifyCodeRequest{Code: "8888"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/v1/recovery/password", ResetPasswordRequest{
		Password:     "brand-new-password",
		Confirmation: "brand-new-password",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// The window is closed once the password is set.
	resp = f.do(t, http.MethodPost, "/api/v1/recovery/password", ResetPasswordRequest{
		Password:     "brand-new-password",
		Confirmation: "brand-new-password",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	_, stored := f.codes.PasswordHash("linh@example.com")
	assert.True(t, stored)
}

func TestAPI_Recovery_ExpiredCodeIsGone(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	resp := f.do(t, http.MethodPost, "/api/v1/recovery/verify", VerifyCodeRequest{Code: "4821"})

	assert.Equal(t, http.StatusGone, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Recovery_PasswordMismatch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	resp := f.do(t, http.MethodPost, "/api/v1/recovery/password", ResetPasswordRequest{
		Password:     "long-enough",
		Confirmation: "different",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_TraceIDHeaderIsEchoedIntoLogsWithoutBreakingRequests(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/v1/properties", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace-ID", "test-trace-id")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
