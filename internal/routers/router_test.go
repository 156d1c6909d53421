package routers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/dao"
	"github.com/notepadie/notepad-local-service/internal/dto"
	"github.com/notepadie/notepad-local-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// envelope 统一响应结构, 见 pkg/app.Res
type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(cfgFile, []byte("server:\n  run-mode: release\n"), 0644)
	require.NoError(t, err)

	cfg, _, err := app.LoadConfig(cfgFile)
	require.NoError(t, err)

	db, err := dao.NewDBEngine(dao.DatabaseConfig{
		Path:         filepath.Join(dir, "notepad.db"),
		AutoMigrate:  true,
		MaxIdleConns: 10,
		MaxOpenConns: 100,
		RunMode:      "release",
	})
	require.NoError(t, err)

	container, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	return NewRouter(container, ut.New(en.New(), en.New(), zh.New()))
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *envelope {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return &env
}

func TestStateSnapshot(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodGet, "/api/state", "")
	require.True(t, env.Status)

	var state dto.StateDTO
	require.NoError(t, json.Unmarshal(env.Data, &state))

	// 首次启动播种欢迎笔记并设为活动笔记
	require.Len(t, state.Notes, 1)
	require.Equal(t, "Welcome", state.Notes[0].Title)
	require.NotNil(t, state.ActiveNoteID)
	require.Equal(t, state.Notes[0].ID, *state.ActiveNoteID)
	require.True(t, state.IsSidebarOpen)
	require.Equal(t, "dark", state.Theme)
}

func TestNoteLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodPost, "/api/note", "{}")
	require.True(t, env.Status)

	var created dto.NoteDTO
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Untitled", created.Title)

	env = doRequest(t, r, http.MethodPut, "/api/note/"+created.ID,
		`{"title":"Plan","content":"- milk"}`)
	require.True(t, env.Status)

	var updated dto.NoteDTO
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.Equal(t, "Plan", updated.Title)
	require.Equal(t, "- milk", updated.Content)

	env = doRequest(t, r, http.MethodDelete, "/api/note/"+created.ID, "")
	require.True(t, env.Status)

	env = doRequest(t, r, http.MethodGet, "/api/notes", "")
	var notes []*dto.NoteDTO
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.Len(t, notes, 1)
}

func TestUpdateUnknownNote(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodPut, "/api/note/no-such-id", `{"title":"x"}`)
	require.False(t, env.Status)
	require.Equal(t, code.ErrorNoteNotFound.Code(), env.Code)
}

func TestFolderNameRejectedAtBoundary(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodPost, "/api/folder", `{"name":"   "}`)
	require.False(t, env.Status)
	require.Equal(t, code.ErrorFolderNameEmpty.Code(), env.Code)
}

func TestDeleteNonEmptyFolderRefused(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodPost, "/api/folder", `{"name":"Work"}`)
	require.True(t, env.Status)
	var folder dto.FolderDTO
	require.NoError(t, json.Unmarshal(env.Data, &folder))

	env = doRequest(t, r, http.MethodPost, "/api/note", `{"folderId":"`+folder.ID+`"}`)
	require.True(t, env.Status)

	env = doRequest(t, r, http.MethodDelete, "/api/folder/"+folder.ID, "")
	require.False(t, env.Status)
	require.Equal(t, code.ErrorFolderNotEmpty.Code(), env.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	env := doRequest(t, r, http.MethodGet, "/api/no-such-endpoint", "")
	require.False(t, env.Status)
	require.Equal(t, code.ErrorNotFoundAPI.Code(), env.Code)
}
