package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/respond"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type addLinkRequest struct {
	URL      string   `json:"url"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type listLinksResponse struct {
	Links []*domain.Link `json:"links"`
	Total int            `json:"total"`
}

type updateLinkRequest struct {
	Category string `json:"category"`
}

// AddLink extracts, classifies and saves a URL.
func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addLinkRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respond.Err(w, err)
			return
		}

		link, err := d.Links.Add(r.Context(), links.AddRequest{
			URL:      req.URL,
			Category: req.Category,
			Tags:     req.Tags,
		})
		if err != nil {
			d.Logger.Warn("add link failed",
				logger.String("url", req.URL),
				logger.Error(err))
			respond.Err(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, link)
	}
}

// ListLinks returns the saved links matching the query filters.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		found, err := d.Links.List(r.Context(), links.Filter{
			Category: q.Get("category"),
			Tag:      q.Get("tag"),
			Query:    q.Get("q"),
			Sort:     q.Get("sort"),
		})
		if err != nil {
			respond.Err(w, err)
			return
		}
		if found == nil {
			found = []*domain.Link{}
		}
		respond.JSON(w, http.StatusOK, listLinksResponse{Links: found, Total: len(found)})
	}
}

// LinkFacets returns the categories and tags in use.
func LinkFacets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := d.Links.Facets(r.Context())
		if err != nil {
			respond.Err(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, facets)
	}
}

// UpdateLink changes the category of a saved link.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateLinkRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respond.Err(w, err)
			return
		}

		link, err := d.Links.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Category)
		if err != nil {
			respond.Err(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, link)
	}
}

// DeleteLink removes a saved link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Links.Delete(r.Context(), id); err != nil {
			respond.Err(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
