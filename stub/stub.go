// Package stub is an in-memory rendition of the back-office API for
// development and tests: the same wire format as the real backend, seeded
// with a small fixture set.
package stub

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	nt "atelier/entity"
)

// resource is one collection and its localized-texts key, empty for flat
// lookups.
type resource struct {
	textsKey string
	records  []map[string]any
}

// Server holds the collections behind one mutex; handlers are short and
// the fixture set is small.
type Server struct {
	mu        sync.Mutex
	token     string
	resources map[string]*resource
	logger    nt.Logger
}

func NewServer(token string, lgr nt.Logger) *Server {
	return &Server{
		token:     token,
		resources: fixtures(),
		logger:    lgr,
	}
}

// Router wires the REST surface: list, crud, exists, and reorder per
// collection.
func (srv *Server) Router() chi.Router {

	rtr := chi.NewRouter()
	rtr.Use(srv.authenticate)

	rtr.Route("/{collection}", func(rtr chi.Router) {
		rtr.Get("/", srv.list)
		rtr.Post("/", srv.create)
		rtr.Get("/exists", srv.exists)
		rtr.Put("/reorder", srv.reorder)
		rtr.Get("/{id}", srv.get)
		rtr.Patch("/{id}", srv.update)
		rtr.Delete("/{id}", srv.remove)
	})

	return rtr
}

// unexported

func (srv *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		if request.Header.Get("Authorization") != "Bearer "+srv.token {
			respondError(writer, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func (srv *Server) collection(writer http.ResponseWriter, request *http.Request) (rsc *resource, ok bool) {

	name := chi.URLParam(request, "collection")
	rsc, ok = srv.resources[name]
	if !ok {
		respondError(writer, http.StatusNotFound, "no such collection", nil)
	}
	return
}

func (srv *Server) list(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	query, err := parseListQuery(request)
	if err != nil {
		respondError(writer, http.StatusUnprocessableEntity, "bad list query", map[string]string{"filters": err.Error()})
		return
	}

	matched := []map[string]any{}
	for _, rec := range rsc.records {
		if matchAll(rec, query.filters, rsc.textsKey) {
			matched = append(matched, rec)
		}
	}
	sortRecords(matched, query.sortField, query.sortOrder, rsc.textsKey)

	total := len(matched)
	srv.logger.Info(request.Context(), "list", "collection", chi.URLParam(request, "collection"), "total", total)

	start := (query.page - 1) * query.pageSize
	if start > total {
		start = total
	}
	end := start + query.pageSize
	if end > total {
		end = total
	}

	respond(writer, http.StatusOK, map[string]any{
		"items":     matched[start:end],
		"total":     total,
		"page":      query.page,
		"page_size": query.pageSize,
	})
}

func (srv *Server) get(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	idx := indexOf(rsc.records, chi.URLParam(request, "id"))
	if idx == -1 {
		respondError(writer, http.StatusNotFound, "record not found", nil)
		return
	}
	respond(writer, http.StatusOK, rsc.records[idx])
}

func (srv *Server) create(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	payload, ok := decodePayload(writer, request)
	if !ok {
		return
	}
	if !srv.validate(writer, rsc, payload, "") {
		return
	}

	record := map[string]any{"id": uuid.NewString()}
	applyPayload(record, payload, rsc.textsKey)
	if hasPosition(rsc.records) || payload["position"] != nil {
		record["position"] = float64(len(rsc.records) + 1)
	}

	rsc.records = append(rsc.records, record)
	respond(writer, http.StatusOK, record)
}

func (srv *Server) update(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	idx := indexOf(rsc.records, chi.URLParam(request, "id"))
	if idx == -1 {
		respondError(writer, http.StatusNotFound, "record not found", nil)
		return
	}

	payload, ok := decodePayload(writer, request)
	if !ok {
		return
	}
	id, _ := rsc.records[idx]["id"].(string)
	if !srv.validate(writer, rsc, payload, id) {
		return
	}

	applyPayload(rsc.records[idx], payload, rsc.textsKey)
	respond(writer, http.StatusOK, rsc.records[idx])
}

func (srv *Server) remove(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	idx := indexOf(rsc.records, chi.URLParam(request, "id"))
	if idx == -1 {
		respondError(writer, http.StatusNotFound, "record not found", nil)
		return
	}

	rsc.records = append(rsc.records[:idx], rsc.records[idx+1:]...)
	writer.WriteHeader(http.StatusNoContent)
}

func (srv *Server) exists(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	code := request.URL.Query().Get("code")
	excludeID := request.URL.Query().Get("exclude_id")

	respond(writer, http.StatusOK, map[string]bool{
		"exists": codeTaken(rsc.records, code, excludeID),
	})
}

func (srv *Server) reorder(writer http.ResponseWriter, request *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	rsc, ok := srv.collection(writer, request)
	if !ok {
		return
	}

	var payload struct {
		IDs []string `json:"ids"`
	}
	err := json.NewDecoder(request.Body).Decode(&payload)
	if err != nil {
		respondError(writer, http.StatusUnprocessableEntity, "bad reorder payload", nil)
		return
	}

	// A reorder against a stale row set is a conflict.
	if len(payload.IDs) > len(rsc.records) {
		respondError(writer, http.StatusConflict, "reorder does not match current records", nil)
		return
	}
	for _, id := range payload.IDs {
		if indexOf(rsc.records, id) == -1 {
			respondError(writer, http.StatusConflict, "reorder does not match current records", nil)
			return
		}
	}

	for pos, id := range payload.IDs {
		idx := indexOf(rsc.records, id)
		rsc.records[idx]["position"] = float64(pos + 1)
	}

	writer.WriteHeader(http.StatusNoContent)
}

// validate enforces a present, unique code on every collection.
func (srv *Server) validate(writer http.ResponseWriter, rsc *resource, payload map[string]any, excludeID string) bool {

	code, present := payload["code"].(string)
	if present && code == "" {
		respondError(writer, http.StatusUnprocessableEntity, "validation failed", map[string]string{"code": "code is required"})
		return false
	}
	if present && codeTaken(rsc.records, code, excludeID) {
		respondError(writer, http.StatusConflict, "code already in use", nil)
		return false
	}
	return true
}

func decodePayload(writer http.ResponseWriter, request *http.Request) (payload map[string]any, ok bool) {

	err := json.NewDecoder(request.Body).Decode(&payload)
	if err != nil {
		respondError(writer, http.StatusUnprocessableEntity, "bad payload", nil)
		return nil, false
	}
	return payload, true
}

// applyPayload merges scalars and reconciles the texts array: incoming
// texts upsert by language id, removed_language_ids detach.
func applyPayload(record, payload map[string]any, textsKey string) {

	for key, val := range payload {
		if key == textsKey || key == "removed_language_ids" || key == "id" {
			continue
		}
		record[key] = val
	}
	if textsKey == "" {
		return
	}

	texts, _ := record[textsKey].([]any)

	if incoming, ok := payload[textsKey].([]any); ok {
		for _, item := range incoming {
			text, ok := item.(map[string]any)
			if !ok {
				continue
			}
			texts = upsertText(texts, text)
		}
	}

	if removed, ok := payload["removed_language_ids"].([]any); ok {
		for _, item := range removed {
			langID, _ := item.(string)
			texts = detachText(texts, langID)
		}
	}

	record[textsKey] = texts
}

func upsertText(texts []any, text map[string]any) []any {
	langID, _ := text["language_id"].(string)
	for i, item := range texts {
		existing, _ := item.(map[string]any)
		if existing["language_id"] == langID {
			texts[i] = text
			return texts
		}
	}
	return append(texts, text)
}

func detachText(texts []any, langID string) []any {
	kept := texts[:0]
	for _, item := range texts {
		text, _ := item.(map[string]any)
		if text["language_id"] != langID {
			kept = append(kept, item)
		}
	}
	return kept
}

func indexOf(records []map[string]any, id string) int {
	for i, rec := range records {
		if rec["id"] == id {
			return i
		}
	}
	return -1
}

func codeTaken(records []map[string]any, code, excludeID string) bool {
	for _, rec := range records {
		if rec["code"] == code && rec["id"] != excludeID {
			return true
		}
	}
	return false
}

func hasPosition(records []map[string]any) bool {
	for _, rec := range records {
		if rec["position"] != nil {
			return true
		}
	}
	return false
}

func respond(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func respondError(writer http.ResponseWriter, status int, msg string, fields map[string]string) {
	body := map[string]any{"error": msg}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	respond(writer, status, body)
}
