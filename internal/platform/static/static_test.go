// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/platform/static"
)

func newRouter(t *testing.T) *chi.Mux {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pikachu.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))

	router := chi.NewRouter()
	router.Handle("/images/*", static.Handler(root))
	return router
}

/*
TestHandler_ServesFile returns file bytes for an existing path.
*/
func TestHandler_ServesFile(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(t).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/images/pikachu.png", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "png-bytes", recorder.Body.String())
}

/*
TestHandler_Missing answers "Path not found" for missing files and directories.
*/
func TestHandler_Missing(t *testing.T) {
	for _, target := range []string{"/images/missing.png", "/images/nested", "/images/../secret"} {
		t.Run(target, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			newRouter(t).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusNotFound, recorder.Code)
			assert.Equal(t, "Path not found", recorder.Body.String())
		})
	}
}
