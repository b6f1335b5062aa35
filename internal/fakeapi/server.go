// Package fakeapi serves an in-memory Ads API for tests. Entities are kept as
// JSON objects so responses carry exactly the wire shapes the real API uses.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Version is the API version prefix the server routes under.
const Version = "12"

// Entity is one stored object in wire form.
type Entity map[string]any

// Request records one call the server received.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Form          string
	ContentType   string
	Authorization string
	Header        http.Header
}

type failure struct {
	status  int
	code    string
	message string
}

// Server is an in-memory Ads API. Use New and Close like httptest.Server.
type Server struct {
	URL string

	srv *httptest.Server

	mu           sync.Mutex
	token        string
	clientID     string
	clientSecret string
	issued       int
	accounts     []Entity
	entities     map[string][]Entity
	locations    []Entity
	stats        map[string]json.RawMessage
	requests     []Request
	failures     map[string][]failure
	nextID       int
	now          time.Time
	rateLimit    *rateLimit
}

type rateLimit struct {
	limit     int
	remaining int
	reset     time.Time
}

// ids query parameter naming the primary key of each collection.
var collectionIDParams = map[string]string{
	"campaigns":           "campaign_ids",
	"line_items":          "line_item_ids",
	"funding_instruments": "funding_instrument_ids",
	"targeting_criteria":  "targeting_criterion_ids",
	"tailored_audiences":  "tailored_audience_ids",
	"promoted_tweets":     "promoted_tweet_ids",
}

// New starts a server with no data and no authentication.
func New() *Server {
	s := &Server{
		entities: make(map[string][]Entity),
		stats:    make(map[string]json.RawMessage),
		failures: make(map[string][]failure),
		now:      time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	s.srv = httptest.NewServer(s.routes())
	s.URL = s.srv.URL

	return s
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(s.record)

	router.Post("/oauth2/token", s.handleToken)

	router.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.countRateLimit)
		r.Use(s.injectFailures)

		r.Get("/{version}/accounts", s.handleListAccounts)
		r.Get("/{version}/accounts/{accountID}", s.handleGetAccount)
		r.Get("/{version}/accounts/{accountID}/{collection}", s.handleList)
		r.Post("/{version}/accounts/{accountID}/{collection}", s.handleCreate)
		r.Get("/{version}/accounts/{accountID}/{collection}/{id}", s.handleGet)
		r.Put("/{version}/accounts/{accountID}/{collection}/{id}", s.handleUpdate)
		r.Delete("/{version}/accounts/{accountID}/{collection}/{id}", s.handleDelete)
		r.Get("/{version}/targeting_criteria/locations", s.handleLocations)
		r.Get("/{version}/stats/accounts/{accountID}", s.handleStats)
	})

	return router
}

// RequireToken makes every API route demand "Authorization: Bearer token".
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// AllowClientCredentials enables the token endpoint for one client. Every
// issued token replaces the required one.
func (s *Server) AllowClientCredentials(clientID, clientSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientID = clientID
	s.clientSecret = clientSecret
}

// TokensIssued returns how many tokens the token endpoint handed out.
func (s *Server) TokensIssued() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.issued
}

// AddAccount stores an account.
func (s *Server) AddAccount(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = append(s.accounts, Entity{
		"id":                 id,
		"name":               name,
		"timezone":           "America/New_York",
		"timezone_switch_at": s.now.Format(time.RFC3339),
		"approval_status":    "ACCEPTED",
		"created_at":         s.now.Format(time.RFC3339),
		"updated_at":         s.now.Format(time.RFC3339),
		"deleted":            false,
	})
}

// AddEntity stores entity under the account's collection, filling id and
// timestamps when missing.
func (s *Server) AddEntity(accountID, collection string, entity Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(accountID, entity)

	key := accountID + "/" + collection
	s.entities[key] = append(s.entities[key], entity)
}

// Entities returns a copy of the stored collection.
func (s *Server) Entities(accountID, collection string) []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.entities[accountID+"/"+collection])
}

// AddLocation stores a targeting location.
func (s *Server) AddLocation(targetingValue, name, countryCode, locationType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locations = append(s.locations, Entity{
		"targeting_value": targetingValue,
		"name":            name,
		"country_code":    countryCode,
		"location_type":   locationType,
	})
}

// SetStats sets the "data" array returned by the account's stats endpoint.
func (s *Server) SetStats(accountID, data string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[accountID] = json.RawMessage(data)
}

// SetRateLimit makes every API response carry rate limit headers. Each
// request spends one unit of remaining until it reaches zero.
func (s *Server) SetRateLimit(limit, remaining int, reset time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rateLimit = &rateLimit{limit: limit, remaining: remaining, reset: reset}
}

// FailNext makes the next request to path answer with an error envelope.
func (s *Server) FailNext(path string, status int, code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[path] = append(s.failures[path], failure{status: status, code: code, message: message})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// RequestsTo returns the requests whose path equals path.
func (s *Server) RequestsTo(path string) []Request {
	var matched []Request

	for _, req := range s.Requests() {
		if req.Path == path {
			matched = append(matched, req)
		}
	}

	return matched
}

func (s *Server) stamp(accountID string, entity Entity) {
	if _, ok := entity["id"]; !ok {
		s.nextID++
		entity["id"] = strconv.FormatInt(int64(46655+s.nextID), 36)
	}

	for _, key := range []string{"created_at", "updated_at"} {
		if _, ok := entity[key]; !ok {
			entity[key] = s.now.Format(time.RFC3339)
		}
	}

	if _, ok := entity["deleted"]; !ok {
		entity["deleted"] = false
	}

	if _, ok := entity["account_id"]; !ok {
		entity["account_id"] = accountID
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var form string

		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			form = string(data)
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Form:          form,
			ContentType:   r.Header.Get("Content-Type"),
			Authorization: r.Header.Get("Authorization"),
			Header:        r.Header.Clone(),
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(strings.NewReader(form))

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()

		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED_ACCESS", "This request is not properly authenticated")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) countRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		if rl := s.rateLimit; rl != nil {
			if rl.remaining > 0 {
				rl.remaining--
			}

			w.Header().Set("X-Rate-Limit-Limit", strconv.Itoa(rl.limit))
			w.Header().Set("X-Rate-Limit-Remaining", strconv.Itoa(rl.remaining))
			w.Header().Set("X-Rate-Limit-Reset", strconv.FormatInt(rl.reset.Unix(), 10))
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		queued := s.failures[r.URL.Path]

		var fail *failure
		if len(queued) > 0 {
			fail = &queued[0]
			s.failures[r.URL.Path] = queued[1:]
		}
		s.mu.Unlock()

		if fail != nil {
			writeError(w, fail.status, fail.code, fail.message)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())

		return
	}

	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.PostForm.Get("client_id")
		clientSecret = r.PostForm.Get("client_secret")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clientID == "" || clientID != s.clientID || clientSecret != s.clientSecret {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})

		return
	}

	s.issued++
	s.token = "token-" + strconv.Itoa(s.issued)

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": s.token,
		"token_type":   "bearer",
		"expires_in":   3600,
	})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := slices.Clone(s.accounts)
	s.mu.Unlock()

	all = filterByIDs(all, r, "account_ids", "id")

	if q := r.URL.Query().Get("q"); q != "" {
		all = slices.DeleteFunc(all, func(e Entity) bool {
			name, _ := e["name"].(string)

			return !strings.HasPrefix(strings.ToLower(name), strings.ToLower(q))
		})
	}

	writePage(w, r, all)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account["id"] == accountID {
			writeJSON(w, http.StatusOK, envelope(account))

			return
		}
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Account "+accountID+" not found")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	key, collection, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	all := slices.Clone(s.entities[key])
	s.mu.Unlock()

	query := r.URL.Query()

	for param := range query {
		switch {
		case param == collectionIDParams[collection]:
			all = filterByIDs(all, r, param, "id")
		case strings.HasSuffix(param, "_ids"):
			all = filterByIDs(all, r, param, strings.TrimSuffix(param, "s"))
		}
	}

	if query.Get("with_deleted") != "true" {
		all = slices.DeleteFunc(all, func(e Entity) bool {
			deleted, _ := e["deleted"].(bool)

			return deleted
		})
	}

	writePage(w, r, all)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key, _, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity := find(s.entities[key], chi.URLParam(r, "id"))
	if entity == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Entity "+chi.URLParam(r, "id")+" not found")

		return
	}

	writeJSON(w, http.StatusOK, envelope(entity))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	key, collection, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	err := r.ParseForm()
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())

		return
	}

	accountID := chi.URLParam(r, "accountID")

	s.mu.Lock()
	defer s.mu.Unlock()

	if collection == "promoted_tweets" {
		created := make([]Entity, 0)

		for _, tweetID := range strings.Split(r.PostForm.Get("tweet_ids"), ",") {
			entity := Entity{
				"line_item_id":    r.PostForm.Get("line_item_id"),
				"tweet_id":        tweetID,
				"entity_status":   "ACTIVE",
				"approval_status": "ACCEPTED",
			}
			s.stamp(accountID, entity)
			s.entities[key] = append(s.entities[key], entity)
			created = append(created, entity)
		}

		writeJSON(w, http.StatusOK, map[string]any{"data": created, "request": map[string]any{}})

		return
	}

	entity := Entity{}
	applyForm(entity, r)

	if _, ok := entity["entity_status"]; !ok {
		entity["entity_status"] = statusFor(entity)
	}

	s.stamp(accountID, entity)
	s.entities[key] = append(s.entities[key], entity)

	writeJSON(w, http.StatusOK, envelope(entity))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	key, _, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	err := r.ParseForm()
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity := find(s.entities[key], chi.URLParam(r, "id"))
	if entity == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Entity "+chi.URLParam(r, "id")+" not found")

		return
	}

	applyForm(entity, r)

	if _, ok := entity["entity_status"]; ok {
		entity["entity_status"] = statusFor(entity)
	}

	entity["updated_at"] = s.now.Add(time.Hour).Format(time.RFC3339)

	writeJSON(w, http.StatusOK, envelope(entity))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key, _, ok := s.collectionKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity := find(s.entities[key], chi.URLParam(r, "id"))
	if entity == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Entity "+chi.URLParam(r, "id")+" not found")

		return
	}

	entity["deleted"] = true

	if _, ok := entity["entity_status"]; ok {
		entity["entity_status"] = "DELETED"
	}

	writeJSON(w, http.StatusOK, envelope(entity))
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	all := slices.Clone(s.locations)
	s.mu.Unlock()

	query := r.URL.Query()

	all = slices.DeleteFunc(all, func(e Entity) bool {
		name, _ := e["name"].(string)

		if q := query.Get("q"); q != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(q)) {
			return true
		}

		if cc := query.Get("country_code"); cc != "" && e["country_code"] != cc {
			return true
		}

		if lt := query.Get("location_type"); lt != "" && e["location_type"] != lt {
			return true
		}

		return false
	})

	writePage(w, r, all)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	query := r.URL.Query()

	for _, required := range []string{"entity", "entity_ids", "start_time"} {
		if query.Get(required) == "" {
			writeErrorAttr(w, http.StatusBadRequest, "MISSING_PARAMETER", required+" is missing", required)

			return
		}
	}

	s.mu.Lock()
	data, ok := s.stats[accountID]
	s.mu.Unlock()

	if !ok {
		data = json.RawMessage("[]")
	}

	params := map[string]any{
		"entity":      query.Get("entity"),
		"entity_ids":  strings.Split(query.Get("entity_ids"), ","),
		"start_time":  query.Get("start_time"),
		"end_time":    nil,
		"granularity": defaultString(query.Get("granularity"), "TOTAL"),
		"placement":   defaultString(query.Get("placement"), "ALL_ON_TWITTER"),
	}

	if end := query.Get("end_time"); end != "" {
		params["end_time"] = end
	}

	if seg := query.Get("segmentation_type"); seg != "" {
		params["segmentation_type"] = seg
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":    data,
		"request": map[string]any{"params": params},
	})
}

func (s *Server) collectionKey(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	collection := chi.URLParam(r, "collection")
	if _, ok := collectionIDParams[collection]; !ok {
		writeError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "Unknown collection "+collection)

		return "", "", false
	}

	return chi.URLParam(r, "accountID") + "/" + collection, collection, true
}

func writePage(w http.ResponseWriter, r *http.Request, all []Entity) {
	query := r.URL.Query()

	count := 200
	if raw := query.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			writeErrorAttr(w, http.StatusBadRequest, "INVALID_PARAMETER", "count must be between 1 and 1000", "count")

			return
		}

		count = n
	}

	offset := 0
	if raw := query.Get("cursor"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorAttr(w, http.StatusBadRequest, "INVALID_PARAMETER", "cursor is invalid", "cursor")

			return
		}

		offset = n
	}

	end := min(offset+count, len(all))
	page := make([]Entity, 0)

	if offset < len(all) {
		page = all[offset:end]
	}

	body := map[string]any{
		"data":        page,
		"next_cursor": nil,
		"request":     map[string]any{"params": map[string]any{}},
	}

	if end < len(all) {
		body["next_cursor"] = strconv.Itoa(end)
	}

	if query.Get("with_total_count") == "true" {
		body["total_count"] = len(all)
	}

	writeJSON(w, http.StatusOK, body)
}

func filterByIDs(all []Entity, r *http.Request, param, attribute string) []Entity {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return all
	}

	wanted := strings.Split(raw, ",")

	return slices.DeleteFunc(all, func(e Entity) bool {
		value, _ := e[attribute].(string)

		return !slices.Contains(wanted, value)
	})
}

func find(all []Entity, id string) Entity {
	for _, entity := range all {
		if entity["id"] == id {
			return entity
		}
	}

	return nil
}

// applyForm copies form values onto entity using the wire types the API
// returns for them.
func applyForm(entity Entity, r *http.Request) {
	for key, values := range r.PostForm {
		value := values[0]

		switch {
		case strings.HasSuffix(key, "_micro"), key == "frequency_cap", key == "duration_in_days":
			n, err := strconv.ParseInt(value, 10, 64)
			if err == nil {
				entity[key] = n
			} else {
				entity[key] = value
			}
		case key == "paused", key == "deleted", key == "standard_delivery", key == "automatically_select_bid":
			entity[key] = value == "true"
		case key == "placements":
			entity[key] = strings.Split(value, ",")
		default:
			entity[key] = value
		}
	}
}

func statusFor(entity Entity) string {
	if deleted, _ := entity["deleted"].(bool); deleted {
		return "DELETED"
	}

	if paused, _ := entity["paused"].(bool); paused {
		return "PAUSED"
	}

	return "ACTIVE"
}

func envelope(entity Entity) map[string]any {
	return map[string]any{
		"data":    entity,
		"request": map[string]any{"params": map[string]any{}},
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeErrorAttr(w, status, code, message, "")
}

func writeErrorAttr(w http.ResponseWriter, status int, code, message, attribute string) {
	entry := map[string]string{"code": code, "message": message}
	if attribute != "" {
		entry["attribute"] = attribute
	}

	writeJSON(w, status, map[string]any{
		"errors":  []map[string]string{entry},
		"request": map[string]any{"params": map[string]any{}},
	})
}
