package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/usecase"
)

type messageResponse struct {
	Message string `json:"message"`
}

// ListBookmarks serves GET /bookmarks, optionally filtered by ?tag=.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Bookmarks.List.Execute(r.Context(), r.URL.Query().Get("tag"))
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeData(w, http.StatusOK, out)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		out, err := d.Bookmarks.Get.Execute(r.Context(), id)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		if out == nil {
			writeError(w, r, d.Logger, domain.NotFound("http.get_bookmark", domain.MsgBookmarkNotFound))
			return
		}
		writeData(w, http.StatusOK, out)
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.CreateBookmarkRequest
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		out, err := d.Bookmarks.Create.Execute(r.Context(), in)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeData(w, http.StatusCreated, out)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		var in usecase.UpdateBookmarkRequest
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		out, err := d.Bookmarks.Update.Execute(r.Context(), id, in)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeData(w, http.StatusOK, out)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		if err := d.Bookmarks.Delete.Execute(r.Context(), id); err != nil {
			writeError(w, r, d.Logger, err)
			return
		}
		writeData(w, http.StatusOK, messageResponse{Message: "bookmark deleted"})
	}
}
