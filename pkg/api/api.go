package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/models"
	"profanity/pkg/moderator"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

type API struct {
	ServiceName string
	// Defaults are the censor options used when a request sets none.
	Defaults moderator.Options

	r  *mux.Router
	m  *moderator.Moderator
	kw MessageWriter
}

// New returns the API serving m. kafkaWriter may be nil, in which case
// request logs are not shipped.
func New(name string, m *moderator.Moderator, kafkaWriter MessageWriter) (*API, error) {
	if m == nil {
		return nil, errors.New("moderator is required")
	}

	api := API{
		ServiceName: name,
		Defaults:    moderator.DefaultOptions,
		r:           mux.NewRouter(),
		m:           m,
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}

	api.r.HandleFunc("/check", api.checkComment).Methods(http.MethodPost)
	api.r.HandleFunc("/censor", api.censorComment).Methods(http.MethodPost)
	api.r.HandleFunc("/profanities", api.profanitiesHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/profanity/{word}", api.isProfanityHandler).Methods(http.MethodGet)

	api.r.HandleFunc("/words", api.wordsHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/words", api.addWordsHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/words/{word}", api.removeWordHandler).Methods(http.MethodDelete)

	api.r.HandleFunc("/allowlist", api.allowListHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/allowlist", api.allowHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/allowlist/{word}", api.disallowHandler).Methods(http.MethodDelete)
}

// checkComment answers 200 for a clean comment and 422 for a profane one.
// Both carry the verdict.
func (api *API) checkComment(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	comment, ok := decodeComment(w, r, "checkComment", sID)
	if !ok {
		return
	}

	verdict := api.m.Moderate(comment, api.Defaults)

	status := http.StatusOK
	if verdict.Profane {
		status = http.StatusUnprocessableEntity
		log.Infof("[checkComment][%s] comment %v rejected: %d profanities", sID, comment.ID, len(verdict.Profanities))
	}
	writeJSON(w, status, verdict, "checkComment", sID)
}

func (api *API) censorComment(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	opts, err := censorOptions(r, api.Defaults)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Debugf("[censorComment][%s] invalid query: %v", sID, err)
		return
	}

	comment, ok := decodeComment(w, r, "censorComment", sID)
	if !ok {
		return
	}

	comment.Text = api.m.Censor(comment.Text, opts)
	writeJSON(w, http.StatusOK, comment, "censorComment", sID)
}

func (api *API) profanitiesHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	comment, ok := decodeComment(w, r, "profanitiesHandler", sID)
	if !ok {
		return
	}

	removePartial := r.URL.Query().Get("partial") == "remove"
	found := api.m.Profanities(comment.Text, removePartial)
	verdict := models.Verdict{CommentID: comment.ID, Profane: len(found) > 0, Profanities: found}

	writeJSON(w, http.StatusOK, verdict, "profanitiesHandler", sID)
}

func (api *API) isProfanityHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	word := mux.Vars(r)["word"]
	resp := models.WordCheck{Word: word, Profane: api.m.IsProfanity(word)}

	writeJSON(w, http.StatusOK, resp, "isProfanityHandler", sID)
}

func (api *API) wordsHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	writeJSON(w, http.StatusOK, models.WordList{Words: api.m.Words()}, "wordsHandler", sID)
}

func (api *API) addWordsHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	wl, ok := decodeWordList(w, r, "addWordsHandler", sID)
	if !ok {
		return
	}

	if err := api.m.AddProfanities(r.Context(), wl.Words); err != nil {
		writeError(w, err, "addWordsHandler", sID)
		return
	}

	log.Infof("[addWordsHandler][%s] added %d profanities", sID, len(wl.Words))
	writeJSON(w, http.StatusCreated, wl, "addWordsHandler", sID)
}

func (api *API) removeWordHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	word := mux.Vars(r)["word"]
	if err := api.m.RemoveProfanity(r.Context(), word); err != nil {
		writeError(w, err, "removeWordHandler", sID)
		return
	}

	log.Infof("[removeWordHandler][%s] removed profanity %q", sID, word)
	w.WriteHeader(http.StatusOK)
}

func (api *API) allowListHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	writeJSON(w, http.StatusOK, models.WordList{Words: api.m.AllowList()}, "allowListHandler", sID)
}

func (api *API) allowHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	wl, ok := decodeWordList(w, r, "allowHandler", sID)
	if !ok {
		return
	}

	if err := api.m.Allow(r.Context(), wl.Words); err != nil {
		writeError(w, err, "allowHandler", sID)
		return
	}

	log.Infof("[allowHandler][%s] allowed %d words", sID, len(wl.Words))
	writeJSON(w, http.StatusCreated, wl, "allowHandler", sID)
}

func (api *API) disallowHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	word := mux.Vars(r)["word"]
	if err := api.m.Disallow(r.Context(), word); err != nil {
		writeError(w, err, "disallowHandler", sID)
		return
	}

	log.Infof("[disallowHandler][%s] removed %q from the allow-list", sID, word)
	w.WriteHeader(http.StatusOK)
}

// censorOptions overrides opts with the optional "char" and "digits" query
// parameters.
func censorOptions(r *http.Request, opts moderator.Options) (moderator.Options, error) {

	if c := r.URL.Query().Get("char"); c != "" {
		if utf8.RuneCountInString(c) != 1 {
			return opts, errors.New("char must be a single character")
		}
		opts.CensorChar, _ = utf8.DecodeRuneInString(c)
	}

	if d := r.URL.Query().Get("digits"); d != "" {
		digits, err := strconv.ParseBool(d)
		if err != nil {
			return opts, errors.New("digits must be a boolean")
		}
		opts.DigitAware = digits
	}

	return opts, nil
}

func decodeComment(w http.ResponseWriter, r *http.Request, handler, sID string) (models.Comment, bool) {
	defer r.Body.Close()

	var comment models.Comment
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&comment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[%s][%s] failed to decode request body: %v", handler, sID, err)
		return models.Comment{}, false
	}

	return comment, true
}

func decodeWordList(w http.ResponseWriter, r *http.Request, handler, sID string) (models.WordList, bool) {
	defer r.Body.Close()

	var wl models.WordList
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&wl)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[%s][%s] failed to decode request body: %v", handler, sID, err)
		return models.WordList{}, false
	}

	return wl, true
}

func writeJSON(w http.ResponseWriter, status int, v any, handler, sID string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("[%s][%s] failed to encode response data: %v", handler, sID, err)
		return
	}
	log.Debugf("[%s][%s] response sent", handler, sID)
}

func writeError(w http.ResponseWriter, err error, handler, sID string) {
	switch {
	case errors.Is(err, moderator.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Debugf("[%s][%s] invalid argument: %v", handler, sID, err)
	case errors.Is(err, moderator.ErrWordNotFound):
		http.Error(w, "Word not found", http.StatusNotFound)
		log.Debugf("[%s][%s] %v", handler, sID, err)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[%s][%s] %v", handler, sID, err)
	}
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
