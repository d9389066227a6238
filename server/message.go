package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/gotdict"
	"github.com/ZaguanLabs/gotdict/naver"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

// Message actions.
const (
	ActionFetchDefinition = "fetchDefinition"
	ActionSaveWord        = "saveWord"
)

// Replies sent back for saveWord in place of a meaning.
const (
	MeaningNotFound      = "Meaning not found."
	MeaningFetchFailed   = "Error fetching definition."
	invalidWordParameter = "Invalid word parameter"
)

type messageRequest struct {
	Action string `json:"action"`
	Word   string `json:"word"`
}

// definitionReply always carries data, which is null on failure.
type definitionReply struct {
	Data  []gotdict.WordEntry `json:"data"`
	Error string              `json:"error,omitempty"`
}

type saveWordReply struct {
	Definition string `json:"definition"`
}

// handleMessage dispatches on the action field. Lookup failures are part of
// the reply body, so the status is 200 for any well-formed message.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid message body")
		return
	}

	switch req.Action {
	case ActionFetchDefinition:
		s.fetchDefinition(w, r, req.Word)
	case ActionSaveWord:
		s.saveWord(w, r, req.Word)
	default:
		respondError(w, http.StatusBadRequest, "unknown action: "+req.Action)
	}
}

func (s *Server) fetchDefinition(w http.ResponseWriter, r *http.Request, word string) {
	entries, err := s.lookup.LookupWord(r.Context(), word)
	if err != nil {
		s.log.WarnContext(r.Context(), "definition fetch failed",
			slog.String("word", word), slog.Any("error", err))
		respondJSON(w, http.StatusOK, definitionReply{Error: gotdict.ErrorMessage(err)})
		return
	}
	respondJSON(w, http.StatusOK, definitionReply{Data: entries})
}

// saveWord looks up the short meaning of word and appends it to the word
// list. The word is only saved when a meaning was found.
func (s *Server) saveWord(w http.ResponseWriter, r *http.Request, word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		respondError(w, http.StatusBadRequest, invalidWordParameter)
		return
	}
	if s.finder == nil || s.words == nil {
		respondError(w, http.StatusNotImplemented, "word list is not configured")
		return
	}

	meaning, err := s.finder.Find(r.Context(), word)
	switch {
	case errors.Is(err, naver.ErrMeaningNotFound):
		respondJSON(w, http.StatusOK, saveWordReply{Definition: MeaningNotFound})
		return
	case err != nil:
		s.log.ErrorContext(r.Context(), "error fetching definition",
			slog.String("word", word), slog.Any("error", err))
		respondJSON(w, http.StatusOK, saveWordReply{Definition: MeaningFetchFailed})
		return
	}

	added, err := s.words.Add(r.Context(), wordlist.Entry{Word: word, Definition: meaning})
	if err != nil {
		s.log.ErrorContext(r.Context(), "save word failed",
			slog.String("word", word), slog.Any("error", err))
	} else if added {
		s.log.InfoContext(r.Context(), "word saved", slog.String("word", word))
	}
	respondJSON(w, http.StatusOK, saveWordReply{Definition: meaning})
}
