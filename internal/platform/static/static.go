// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package static serves files from a directory under a chi wildcard route.
//
// Missing files and directories answer with the API's "Path not found" error
// instead of the standard library's default 404 page, and directory listings
// are never produced.
package static

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/internal/platform/respond"
)

// Handler serves files below root. It must be mounted on a route ending in
// "/*"; the wildcard value is the file path relative to root.
func Handler(root string) http.Handler {
	fileSystem := http.Dir(root)

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		name := path.Clean("/" + chi.URLParam(request, "*"))

		file, err := fileSystem.Open(name)
		if err != nil {
			respond.Error(writer, request, apperr.PathNotFound())
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil || info.IsDir() {
			respond.Error(writer, request, apperr.PathNotFound())
			return
		}

		http.ServeContent(writer, request, info.Name(), info.ModTime(), file)
	})
}
