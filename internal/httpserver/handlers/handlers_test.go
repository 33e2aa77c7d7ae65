package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/store/memory"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

type downStore struct{ *memory.Store }

func (downStore) Ping(context.Context) error {
	return store.Unavailable(store.OpPing, errors.New("connection refused"))
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		repo       store.Repository
		wantStatus int
		wantReady  bool
	}{
		{"store up", memory.New(), http.StatusOK, true},
		{"store down", downStore{memory.New()}, http.StatusServiceUnavailable, false},
		{"no store", nil, http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deps.Deps{Logger: logger.Nop(), Store: tt.repo, StoreDriver: "memory", Taxonomy: taxonomy.NewRegistry(nil)}
			rec := httptest.NewRecorder()
			Readyz(d)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body readyzResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Ready != tt.wantReady {
				t.Errorf("ready = %v, want %v", body.Ready, tt.wantReady)
			}
			if tax := body.Components["taxonomy"]; !tax.OK || tax.LastReload != "never" {
				t.Errorf("taxonomy component = %+v, want ok and never reloaded", tax)
			}
		})
	}
}

func TestReloadTaxonomyDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	ReloadTaxonomy(deps.Deps{Logger: logger.Nop()})(rec, httptest.NewRequest(http.MethodPost, "/api/taxonomy/reload", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"url":"https://example.com"}`, ""},
		{"empty", ``, "request body is empty"},
		{"malformed", `{"url":`, "malformed JSON body"},
		{"too large", `{"url":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst addLinkRequest
			rec := httptest.NewRecorder()
			err := decodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &dst)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("decodeJSON() error = %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("decodeJSON() error = %v, want ErrInvalidInput", err)
			}
			if got := domain.Message(err); got != tt.wantErr {
				t.Errorf("message = %q, want %q", got, tt.wantErr)
			}
		})
	}
}
