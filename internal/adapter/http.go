package adapter

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpNotesClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPNotesClient constructs the HTTP implementation of [NotesClient].
// It normalises adapterCfg.HTTPAddress into a base URL and applies the
// request timeout.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPNotesClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (NotesClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpNotesClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpNotesClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpNotesClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/user/register and keeps the bearer
// token from the Authorization response header.
func (h *httpNotesClient) Register(ctx context.Context, credentials models.Credentials) error {
	return h.authenticate(ctx, "/api/user/register", credentials)
}

// Login POSTs the credentials to /api/user/login and keeps the bearer token
// from the Authorization response header.
func (h *httpNotesClient) Login(ctx context.Context, credentials models.Credentials) error {
	return h.authenticate(ctx, "/api/user/login", credentials)
}

func (h *httpNotesClient) authenticate(ctx context.Context, path string, credentials models.Credentials) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		Post(path)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	h.logger.Debug().Str("user", credentials.Login).Msg("signed in")
	return nil
}

func (h *httpNotesClient) ListNotes(ctx context.Context) (models.NotesResponse, error) {
	var notes models.NotesResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&notes).
		Get("/api/notes")
	if err != nil {
		return models.NotesResponse{}, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.NotesResponse{}, err
	}

	return notes, nil
}

func (h *httpNotesClient) AddNote(ctx context.Context, content, timestamp string, file *models.Upload) (string, error) {
	var created models.NoteCreatedResponse

	req := h.authedRequest(ctx).SetResult(&created)
	if file == nil {
		req.
			SetHeader("Content-Type", "application/json").
			SetBody(models.CreateNoteRequest{Content: content, Timestamp: timestamp})
	} else {
		req.
			SetFormData(map[string]string{
				"content":   content,
				"timestamp": timestamp,
			}).
			SetFileReader("file", file.Name, file.Reader)
	}

	resp, err := req.Post("/api/notes")
	if err != nil {
		return "", fmt.Errorf("add note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return created.NoteID, nil
}

func (h *httpNotesClient) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	var note models.Note

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", noteID).
		SetResult(&note).
		Get("/api/notes/{id}")
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

func (h *httpNotesClient) UpdateNote(ctx context.Context, noteID, content string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", noteID).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpdateNoteRequest{Content: content}).
		Put("/api/notes/{id}")
	if err != nil {
		return fmt.Errorf("update note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpNotesClient) DeleteNote(ctx context.Context, noteID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", noteID).
		Delete("/api/notes/{id}")
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpNotesClient) DownloadFile(ctx context.Context, noteID string, w io.Writer) (string, int64, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", noteID).
		SetDoNotParseResponse(true).
		Get("/api/notes/{id}/file")
	if err != nil {
		return "", 0, fmt.Errorf("download request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		return "", 0, mapStatus(resp.StatusCode(), raw)
	}

	fileName := fileNameFromDisposition(resp.Header().Get("Content-Disposition"))

	n, err := io.Copy(w, body)
	if err != nil {
		return fileName, n, fmt.Errorf("error writing attachment: %w", err)
	}

	return fileName, n, nil
}

func (h *httpNotesClient) StorageUsage(ctx context.Context) (models.StorageUsage, error) {
	var usage models.StorageUsage

	resp, err := h.authedRequest(ctx).
		SetResult(&usage).
		Get("/api/storage")
	if err != nil {
		return models.StorageUsage{}, fmt.Errorf("storage usage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StorageUsage{}, err
	}

	return usage, nil
}

func (h *httpNotesClient) ListUsers(ctx context.Context) (models.UsersResponse, error) {
	var users models.UsersResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&users).
		Get("/api/admin/users")
	if err != nil {
		return models.UsersResponse{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UsersResponse{}, err
	}

	return users, nil
}

func (h *httpNotesClient) SetUserPassword(ctx context.Context, username, password string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("username", username).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SetPasswordRequest{Password: password}).
		Put("/api/admin/users/{username}/password")
	if err != nil {
		return fmt.Errorf("set password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpNotesClient) DeleteUser(ctx context.Context, username string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("username", username).
		Delete("/api/admin/users/{username}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpNotesClient) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpNotesClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func fileNameFromDisposition(value string) string {
	_, params, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return params["filename"]
}
