package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/Scriptura/core/cache"
	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/passage"
	"github.com/FocuswithJustin/Scriptura/core/sqlite"
	"github.com/FocuswithJustin/Scriptura/internal/commentary"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
	"github.com/FocuswithJustin/Scriptura/internal/server"
	"github.com/FocuswithJustin/Scriptura/internal/store"
	"github.com/FocuswithJustin/Scriptura/internal/validation"
)

const apiVersion = "0.4.0"

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	maxSeedLength      = 128

	searchCacheSize = 128
	searchCacheTTL  = 10 * time.Minute
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError is the error half of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta carries per-response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ParseRequest is the body of POST /api/parse/reference.
type ParseRequest struct {
	Reference string `json:"reference"`
	Version   string `json:"version,omitempty"`
}

// BatchParseRequest is the body of POST /api/parse/references.
type BatchParseRequest struct {
	References []string `json:"references"`
	Version    string   `json:"version,omitempty"`
}

// BatchParseResult carries per-reference results in input order.
type BatchParseResult struct {
	Version    string           `json:"version"`
	References []passage.Result `json:"references"`
}

// VerseInfo is a single verse lookup response.
type VerseInfo struct {
	Version string `json:"version"`
	store.Verse
}

// PassageInfo is the response of GET /api/passage.
type PassageInfo struct {
	Version       string          `json:"version"`
	Book          string          `json:"book"`
	Chapter       int             `json:"chapter"`
	Start         int             `json:"start"`
	End           int             `json:"end"`
	Verses        []passage.Verse `json:"verses"`
	FormattedText string          `json:"formatted_text"`
}

// ChapterInfo is the response of GET /api/chapter.
type ChapterInfo struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  int    `json:"verses"`
	Text    string `json:"text"`
}

// BookList is the response of GET /api/books.
type BookList struct {
	Version string   `json:"version"`
	Books   []string `json:"books"`
}

// ChapterList is the response of GET /api/chapters.
type ChapterList struct {
	Version  string `json:"version"`
	Book     string `json:"book"`
	Chapters []int  `json:"chapters"`
}

// VerseList is the response of GET /api/verses.
type VerseList struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  []int  `json:"verses"`
}

// SearchResultInfo is the response of GET /api/search.
type SearchResultInfo struct {
	Version string        `json:"version"`
	Query   string        `json:"query"`
	Matches []store.Verse `json:"matches"`
}

// DayTextInfo is the response of GET /api/daytext.
type DayTextInfo struct {
	Version   string      `json:"version"`
	Seed      string      `json:"seed"`
	Reference string      `json:"reference"`
	Verse     store.Verse `json:"verse"`
}

// CommentaryInfo is the response of GET /api/commentary.
type CommentaryInfo struct {
	Source  string         `json:"source"`
	Book    string         `json:"book"`
	Chapter int            `json:"chapter"`
	Verse   int            `json:"verse,omitempty"`
	Note    string         `json:"note,omitempty"`
	Notes   map[int]string `json:"notes,omitempty"`
}

// HealthInfo is the payload behind /api/health.
type HealthInfo struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Versions int    `json:"versions"`
	Verses   int    `json:"verses"`
}

// StatusInfo is the status endpoint response.
type StatusInfo struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Store      store.Stats       `json:"store"`
	Commentary []commentary.Info `json:"commentary,omitempty"`
	Cache      cache.Stats       `json:"cache"`
	Clients    int               `json:"ws_clients"`
	KeyStore   *sqlite.Info      `json:"key_store,omitempty"`
}

// Server state initialized by Start.
var (
	serverStore *store.Store
	serverNotes *commentary.Store
	parseCache  *cache.ResultCache
	searchCache cache.Cache[string, []store.Verse]
)

var startTime = time.Now()

var jsonContentTypes = []string{"application/json"}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "Scriptura API",
		"version": apiVersion,
		"endpoints": []string{
			"POST /api/parse/reference",
			"GET /api/parse/reference/:reference",
			"POST /api/parse/references",
			"GET /api/verse",
			"GET /api/passage",
			"GET /api/chapter",
			"GET /api/books",
			"GET /api/chapters",
			"GET /api/verses",
			"GET /api/search",
			"GET /api/random",
			"GET /api/daytext",
			"GET /api/versions",
			"GET /api/commentary",
			"GET /api/health",
			"GET /api/status",
			"WS /api/ws",
		},
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	stats := serverStore.Stats()
	respond(w, http.StatusOK, HealthInfo{
		Status:   "healthy",
		Version:  apiVersion,
		Uptime:   time.Since(startTime).String(),
		Versions: stats.Versions,
		Verses:   stats.Verses,
	})
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	info := StatusInfo{
		Status:  "healthy",
		Version: apiVersion,
		Uptime:  time.Since(startTime).String(),
		Store:   serverStore.Stats(),
		Cache:   parseCache.Stats(),
		Clients: GlobalHub.ClientCount(),
	}
	if serverNotes != nil {
		info.Commentary = serverNotes.Sources()
	}
	if keyStore != nil {
		driver := sqlite.GetInfo()
		info.KeyStore = &driver
	}
	respond(w, http.StatusOK, info)
}

func handleParseReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Reference) == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REFERENCE", "reference is required")
		return
	}

	v := resolveVersion(w, req.Version)
	if v == nil {
		return
	}
	respond(w, http.StatusOK, parseOne(v, req.Reference))
}

// handleParseReferencePath serves GET /api/parse/reference/{reference}. The
// reference arrives URL-encoded in the path; net/http hands it over decoded.
func handleParseReferencePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/parse/reference/")
	if strings.TrimSpace(raw) == "" {
		respondError(w, http.StatusBadRequest, "MISSING_REFERENCE", "reference is required")
		return
	}

	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	respond(w, http.StatusOK, parseOne(v, raw))
}

func handleParseBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var req BatchParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if len(req.References) == 0 {
		respondError(w, http.StatusBadRequest, "MISSING_REFERENCES", "references is required")
		return
	}
	if len(req.References) > validation.MaxBatchReferences {
		respondError(w, http.StatusBadRequest, "TOO_MANY_REFERENCES",
			fmt.Sprintf("at most %d references per request", validation.MaxBatchReferences))
		return
	}

	v := resolveVersion(w, req.Version)
	if v == nil {
		return
	}

	// Individual failures stay in the result list; the batch itself never
	// fails once the request is well formed.
	results := make([]passage.Result, 0, len(req.References))
	for _, raw := range req.References {
		results = append(results, parseOne(v, raw))
	}
	respondTotal(w, http.StatusOK, BatchParseResult{Version: v.Key(), References: results}, len(results))
}

func handleVerse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	chapter, ok := intParam(w, r, "chapter")
	if !ok {
		return
	}
	verse, ok := intParam(w, r, "verse")
	if !ok {
		return
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	vs, err := v.Verse(book, chapter, verse)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, VerseInfo{Version: v.Key(), Verse: vs})
}

func handlePassage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	chapter, ok := intParam(w, r, "chapter")
	if !ok {
		return
	}
	start, ok := intParam(w, r, "start")
	if !ok {
		return
	}
	end, ok := intParam(w, r, "end")
	if !ok {
		return
	}
	if end < start {
		respondError(w, http.StatusBadRequest, "INVALID_RANGE",
			errors.NewRangeOrder("verse", start, end).Error())
		return
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	// Same formatting convention as the parse pipeline: bare verse numbers,
	// texts joined with single spaces.
	verses := make([]passage.Verse, 0, end-start+1)
	var text strings.Builder
	name := ""
	for n := start; n <= end; n++ {
		vs, err := v.Verse(book, chapter, n)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		name = vs.Book
		verses = append(verses, passage.Verse{Verse: n, Text: vs.Text})
		if n > start {
			text.WriteByte(' ')
		}
		fmt.Fprintf(&text, "%d %s", n, vs.Text)
	}

	respond(w, http.StatusOK, PassageInfo{
		Version:       v.Key(),
		Book:          name,
		Chapter:       chapter,
		Start:         start,
		End:           end,
		Verses:        verses,
		FormattedText: text.String(),
	})
}

func handleChapter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	chapter, ok := intParam(w, r, "chapter")
	if !ok {
		return
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	numbers, err := v.VerseNumbers(book, chapter)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	text, err := v.ChapterText(book, chapter)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	b, _ := canon.Resolve(book)
	respond(w, http.StatusOK, ChapterInfo{
		Version: v.Key(),
		Book:    b.Name,
		Chapter: chapter,
		Verses:  len(numbers),
		Text:    text,
	})
}

func handleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	books := v.Books()
	respondTotal(w, http.StatusOK, BookList{Version: v.Key(), Books: books}, len(books))
}

func handleChapters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	chapters, err := v.Chapters(book)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	b, _ := canon.Resolve(book)
	respondTotal(w, http.StatusOK, ChapterList{Version: v.Key(), Book: b.Name, Chapters: chapters}, len(chapters))
}

func handleVerses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	chapter, ok := intParam(w, r, "chapter")
	if !ok {
		return
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	if notModified(w, r, v) {
		return
	}

	numbers, err := v.VerseNumbers(book, chapter)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	b, _ := canon.Resolve(book)
	respondTotal(w, http.StatusOK, VerseList{Version: v.Key(), Book: b.Name, Chapter: chapter, Verses: numbers}, len(numbers))
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	query, ok := stringParam(w, r, "q")
	if !ok {
		return
	}
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", "limit must be a positive integer")
			return
		}
		limit = min(n, maxSearchLimit)
	}
	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}

	// Full-text scans are the most expensive lookups the store serves, so
	// results stay cached for a while.
	key := v.Key() + "|" + strconv.Itoa(limit) + "|" + strings.ToLower(query)
	matches, found := searchCache.Get(key)
	if !found {
		matches = v.Search(query, limit)
		searchCache.Put(key, matches)
	}
	if matches == nil {
		matches = []store.Verse{}
	}
	respondTotal(w, http.StatusOK, SearchResultInfo{Version: v.Key(), Query: query, Matches: matches}, len(matches))
}

func handleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}
	respond(w, http.StatusOK, VerseInfo{Version: v.Key(), Verse: v.Random()})
}

// handleDayText serves the verse of the day. The selection seed is the date
// parameter, the seed parameter, or today's UTC date, in that order.
func handleDayText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	seed := r.URL.Query().Get("date")
	if seed != "" {
		if _, err := time.Parse("2006-01-02", seed); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", "date must be YYYY-MM-DD")
			return
		}
	} else {
		seed = r.URL.Query().Get("seed")
		if len(seed) > maxSeedLength {
			respondError(w, http.StatusBadRequest, "INVALID_PARAMETER",
				fmt.Sprintf("seed must be at most %d characters", maxSeedLength))
			return
		}
	}
	if seed == "" {
		seed = time.Now().UTC().Format("2006-01-02")
	}

	v := resolveVersion(w, r.URL.Query().Get("version"))
	if v == nil {
		return
	}

	vs := v.DayText(seed)
	respond(w, http.StatusOK, DayTextInfo{
		Version:   v.Key(),
		Seed:      seed,
		Reference: fmt.Sprintf("%s %d:%d", vs.Book, vs.Chapter, vs.Verse),
		Verse:     vs,
	})
}

func handleVersions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	versions := serverStore.Versions()
	respondTotal(w, http.StatusOK, versions, len(versions))
}

func handleCommentary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	if serverNotes == nil || serverNotes.Empty() {
		respondError(w, http.StatusNotFound, "NO_COMMENTARY", "no commentary sources loaded")
		return
	}

	book, ok := stringParam(w, r, "book")
	if !ok {
		return
	}
	chapter, ok := intParam(w, r, "chapter")
	if !ok {
		return
	}
	source := r.URL.Query().Get("source")

	b, found := canon.Resolve(book)
	if !found {
		respondError(w, http.StatusNotFound, "UNKNOWN_BOOK", errors.NewUnknownBook(book).Error())
		return
	}

	// Without a verse parameter the whole chapter's notes come back.
	if r.URL.Query().Get("verse") == "" {
		notes, err := serverNotes.Chapter(source, book, chapter)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondTotal(w, http.StatusOK, CommentaryInfo{
			Source:  sourceID(source),
			Book:    b.Name,
			Chapter: chapter,
			Notes:   notes,
		}, len(notes))
		return
	}

	verse, ok := intParam(w, r, "verse")
	if !ok {
		return
	}
	note, err := serverNotes.Note(source, book, chapter, verse)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, CommentaryInfo{
		Source:  sourceID(source),
		Book:    b.Name,
		Chapter: chapter,
		Verse:   verse,
		Note:    note,
	})
}

// sourceID names the commentary source a response came from.
func sourceID(requested string) string {
	if requested != "" {
		return strings.ToLower(requested)
	}
	if sources := serverNotes.Sources(); len(sources) > 0 {
		return sources[0].ID
	}
	return ""
}

// parseOne runs one reference through the pipeline, consulting the result
// cache first. Validation failures become parse failures rather than
// transport errors so batch items never abort the surrounding request.
func parseOne(v *store.Version, raw string) passage.Result {
	if err := validation.ValidateReference(raw); err != nil {
		return passage.Result{
			Reference: raw,
			Parsed:    false,
			Error:     errors.KindMalformedInput,
			Message:   err.Error(),
		}
	}

	key := cache.ResultKey(v.Key(), raw)
	if res, found := parseCache.Get(key); found {
		return res
	}

	res := passage.Assemble(raw, v)
	if !res.Parsed {
		logging.ParseFailure(raw, res.Error, "version", v.Key())
	}
	parseCache.Put(key, res)
	return res
}

// resolveVersion resolves a version name, answering 400 for unknown ones.
// A nil return means the response has been written.
func resolveVersion(w http.ResponseWriter, name string) *store.Version {
	if err := validation.ValidateVersionName(name); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_VERSION", err.Error())
		return nil
	}
	v, err := serverStore.Resolve(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, "UNKNOWN_VERSION", err.Error())
		return nil
	}
	return v
}

// stringParam fetches a required query parameter.
func stringParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", fmt.Sprintf("%s is required", name))
		return "", false
	}
	return val, true
}

// intParam fetches a required positive integer query parameter.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMETER", fmt.Sprintf("%s is required", name))
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return n, true
}

// requireJSON rejects POST bodies that declare a non-JSON content type.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || server.ValidateContentType(ct, jsonContentTypes) {
		return true
	}
	respondError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")
	return false
}

// notModified handles conditional requests against the version content hash.
// Loaded texts are immutable for the life of the process, so the hash is a
// valid weak validator for any response derived from a single version.
func notModified(w http.ResponseWriter, r *http.Request, v *store.Version) bool {
	etag := `W/"` + v.Hash() + `"`
	w.Header().Set("ETag", etag)
	match := r.Header.Get("If-None-Match")
	if match == "*" || (match != "" && strings.Contains(match, etag)) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// respondStoreError maps a store or commentary lookup error to an HTTP
// status: missing resources are 404, bad requests 400.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrUnknownBook):
		respondError(w, http.StatusNotFound, "UNKNOWN_BOOK", err.Error())
	case errors.Is(err, errors.ErrVerseNotFound):
		respondError(w, http.StatusNotFound, "VERSE_NOT_FOUND", err.Error())
	case errors.Is(err, errors.ErrChapterOutOfRange), errors.Is(err, errors.ErrVerseOutOfRange):
		respondError(w, http.StatusNotFound, "OUT_OF_RANGE", err.Error())
	case errors.Is(err, errors.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, errors.ErrInvalidRangeOrder), errors.Is(err, errors.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		logging.Error("lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// respondTotal is respond with a total count in the metadata.
func respondTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
