package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/i18n"
	"github.com/designemotion/transcript/internal/orchestrator"
	"github.com/designemotion/transcript/internal/transcript"
)

// maxBodyBytes bounds request bodies. Screenshots arrive base64 encoded.
const maxBodyBytes = 20 << 20

// params holds the request fields, read from the JSON body of a POST or from
// the query string.
type params map[string]string

func readParams(w http.ResponseWriter, r *http.Request) (params, error) {
	p := params{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	if r.Method != http.MethodPost || r.Body == nil {
		return p, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return p, &apperr.InvalidRequestError{Field: "body", Reason: "could not be read"}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return p, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return p, &apperr.InvalidRequestError{Field: "body", Reason: "must be a JSON object"}
	}
	for k, v := range fields {
		switch v := v.(type) {
		case nil:
		case string:
			p[k] = v
		default:
			p[k] = fmt.Sprint(v)
		}
	}
	return p, nil
}

func (p params) get(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(p[name]); v != "" {
			return v
		}
	}
	return ""
}

func (p params) require(name string, aliases ...string) (string, error) {
	v := p.get(append([]string{name}, aliases...)...)
	if v == "" {
		return "", &apperr.InvalidRequestError{Field: name, Reason: "is required"}
	}
	return v, nil
}

// language is the language of messages shown to the client.
func language(r *http.Request, p params) string {
	if lang := p.get("lang"); lang != "" {
		return lang
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return strings.TrimSpace(strings.Split(strings.Split(accept, ",")[0], ";")[0])
	}
	return i18n.DefaultLanguage
}

type transcriptResponse struct {
	Known      int    `json:"known"`
	Transcript string `json:"transcript,omitempty"`
	TicketID   string `json:"ticket_id,omitempty"`
	// ID repeats TicketID for browser clients that read data.id.
	ID string `json:"id,omitempty"`
}

func (h *Handler) transcript(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(w, r)
	lang := language(r, p)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}

	req := orchestrator.TranscriptRequest{
		ETag:     p.get("etag"),
		Language: p.get("lang"),
	}
	fields := []struct {
		name string
		dst  *string
	}{
		{"email", &req.AccountID},
		{"key", &req.Key},
		{"url", &req.URL},
	}
	for _, field := range fields {
		if *field.dst, err = p.require(field.name); err != nil {
			h.writeError(w, r, err, lang)
			return
		}
	}

	decision, err := h.Transcripts.RequestTranscript(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	if decision.Known {
		writeJSON(w, http.StatusOK, transcriptResponse{Known: 1, Transcript: decision.Transcript})
		return
	}
	writeJSON(w, http.StatusCreated, transcriptResponse{Known: 0, TicketID: decision.TicketID, ID: decision.TicketID})
}

func (h *Handler) imageTranscript(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r, h.cfg.TrustForwardedFor)
	blocked, err := h.Limiter.ShouldBlock(r.Context(), ip)
	if err != nil {
		h.writeError(w, r, err, language(r, nil))
		return
	}
	if blocked {
		h.Metrics.RateLimit.WithLabelValues("blocked").Inc()
		h.writeError(w, r, &apperr.RateLimitedError{Identifier: ip}, language(r, nil))
		return
	}
	h.Metrics.RateLimit.WithLabelValues("allowed").Inc()

	p, err := readParams(w, r)
	lang := language(r, p)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}

	req := orchestrator.ImageRequest{Language: p.get("lang")}
	if req.AccountID, err = p.require("email"); err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	if req.Key, err = p.require("key"); err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	if req.TicketID, err = p.require("ticket_id", "id"); err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	encoded, err := p.require("image")
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	if req.Image, err = decodeImage(encoded); err != nil {
		h.writeError(w, r, err, lang)
		return
	}

	text, err := h.Transcripts.CompleteTranscriptWithImage(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

// decodeImage accepts standard base64, with or without a data URL prefix.
func decodeImage(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &apperr.InvalidRequestError{Field: "image", Reason: "is not valid base64"}
	}
	return image, nil
}

func (h *Handler) validationMail(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(w, r)
	lang := language(r, p)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}

	email, err := p.require("email")
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	key, err := p.require("key")
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	if _, err := h.Registrar.Issue(r.Context(), email, key, p.get("tool")); err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{Info: h.Localizer.Text(i18n.MsgValidationMailSent, lang, email)})
}

func (h *Handler) registerKey(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(w, r)
	lang := language(r, p)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}

	validationKey, err := p.require("validation_key")
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	v, err := h.Registrar.Redeem(r.Context(), validationKey)
	if err != nil {
		h.writeError(w, r, err, lang)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{Info: h.Localizer.Text(i18n.MsgKeyRegistered, lang, v.Email)})
}

type cacheListing struct {
	Entries int                          `json:"cache_entries"`
	Data    map[string]*transcript.Entry `json:"data"`
}

func (h *Handler) listCache(w http.ResponseWriter, r *http.Request) {
	urls, err := h.Cache.URLs(r.Context())
	if err != nil {
		h.writeError(w, r, err, i18n.DefaultLanguage)
		return
	}
	sort.Strings(urls)

	listing := cacheListing{Data: make(map[string]*transcript.Entry, len(urls))}
	for _, url := range urls {
		entry, err := h.Cache.Entry(r.Context(), url)
		if err != nil {
			h.writeError(w, r, err, i18n.DefaultLanguage)
			return
		}
		if entry != nil {
			listing.Data[url] = entry
		}
	}
	listing.Entries = len(listing.Data)
	writeJSON(w, http.StatusOK, listing)
}

type clearResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if url := r.URL.Query().Get("key"); url != "" {
		entry, err := h.Cache.Entry(ctx, url)
		if err != nil {
			h.writeError(w, r, err, i18n.DefaultLanguage)
			return
		}
		if entry == nil {
			writeJSON(w, http.StatusOK, clearResponse{Message: fmt.Sprintf("Cache key '%s' not found", url)})
			return
		}
		if err := h.Cache.Remove(ctx, url); err != nil {
			h.writeError(w, r, err, i18n.DefaultLanguage)
			return
		}
		writeJSON(w, http.StatusOK, clearResponse{Message: fmt.Sprintf("Cache key '%s' deleted successfully", url), Removed: 1})
		return
	}

	removed, err := h.Cache.Clear(ctx)
	if err != nil {
		h.writeError(w, r, err, i18n.DefaultLanguage)
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Message: "All cache entries cleared successfully", Removed: removed})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range h.HealthChecks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
