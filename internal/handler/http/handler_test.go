package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "test-token"

type testMocks struct {
	auth    *mock.MockAuthService
	notes   *mock.MockNoteService
	admin   *mock.MockAdminService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, cfg config.Server) (http.Handler, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := testMocks{
		auth:    mock.NewMockAuthService(ctrl),
		notes:   mock.NewMockNoteService(ctrl),
		admin:   mock.NewMockAdminService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:    m.auth,
		NoteService:    m.notes,
		AdminService:   m.admin,
		AppInfoService: m.appInfo,
	}

	return NewHandler(services, cfg, logger.Nop()).Init(), m
}

// signIn makes testToken resolve to username.
func (m testMocks) signIn(username string) {
	m.auth.EXPECT().
		ParseToken(gomock.Any(), testToken).
		Return(models.Token{Username: username}, nil).
		AnyTimes()
}

func doRequest(h http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}
