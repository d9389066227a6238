package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ZaguanLabs/gotdict"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

// ExportFilename is the attachment name used by GET /v1/words/export.csv.
const ExportFilename = "my_words.csv"

type addWordRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

type addWordResponse struct {
	Entry wordlist.Entry `json:"entry"`
	Added bool           `json:"added"`
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	word, err := url.PathUnescape(chi.URLParam(r, "word"))
	if err != nil {
		respondError(w, http.StatusBadRequest, invalidWordParameter)
		return
	}

	entries, err := s.lookup.LookupWord(r.Context(), word)
	if err != nil {
		respondError(w, statusFor(err), gotdict.ErrorMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, definitionReply{Data: entries})
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	entries, err := s.words.List(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "list words failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load word list")
		return
	}
	if entries == nil {
		entries = []wordlist.Entry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"words": entries})
}

// handleAddWord saves a word. Without a definition the meaning is looked up
// with the configured finder.
func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry := wordlist.Entry{
		Word:       strings.TrimSpace(req.Word),
		Definition: strings.TrimSpace(req.Definition),
	}
	if entry.Word == "" {
		respondError(w, http.StatusBadRequest, invalidWordParameter)
		return
	}

	if entry.Definition == "" {
		if s.finder == nil {
			respondError(w, http.StatusBadRequest, "definition is required")
			return
		}
		meaning, err := s.finder.Find(r.Context(), entry.Word)
		if err != nil {
			code := statusFor(err)
			msg := MeaningFetchFailed
			if code == http.StatusNotFound {
				msg = MeaningNotFound
			}
			respondError(w, code, msg)
			return
		}
		entry.Definition = meaning
	}

	added, err := s.words.Add(r.Context(), entry)
	if err != nil {
		s.log.ErrorContext(r.Context(), "save word failed",
			slog.String("word", entry.Word), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to save word")
		return
	}

	code := http.StatusOK
	if added {
		code = http.StatusCreated
	}
	respondJSON(w, code, addWordResponse{Entry: entry, Added: added})
}

func (s *Server) handleExportWords(w http.ResponseWriter, r *http.Request) {
	entries, err := s.words.List(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "list words failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load word list")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": ExportFilename}))
	w.WriteHeader(http.StatusOK)
	if err := wordlist.ExportCSV(w, entries); err != nil {
		s.log.ErrorContext(r.Context(), "export failed", slog.Any("error", err))
	}
}

// handleImportWords replaces the word list with an uploaded CSV file. The
// file is either the raw body or the "file" part of a multipart form.
func (s *Server) handleImportWords(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var src io.Reader = r.Body
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer file.Close()
		src = file
	}

	entries, err := wordlist.ImportCSV(src)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid CSV: "+err.Error())
		return
	}
	if err := s.words.Replace(r.Context(), entries); err != nil {
		s.log.ErrorContext(r.Context(), "import failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to save word list")
		return
	}

	s.log.InfoContext(r.Context(), "word list imported", slog.Int("count", len(entries)))
	respondJSON(w, http.StatusOK, map[string]int{"imported": len(entries)})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	entries, err := s.words.List(r.Context())
	if err != nil {
		s.log.ErrorContext(r.Context(), "list words failed", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load word list")
		return
	}

	q, err := wordlist.RandomQuestion(entries, nil)
	if errors.Is(err, wordlist.ErrEmptyList) {
		respondError(w, http.StatusNotFound, "No words saved yet.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, q)
}
