package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ZaguanLabs/gotdict"
	"github.com/ZaguanLabs/gotdict/naver"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorResponse{Error: message})
}

// statusFor maps lookup and word list errors onto HTTP status codes.
func statusFor(err error) int {
	var netErr *gotdict.NetworkError
	var upErr *gotdict.UpstreamError

	switch {
	case errors.Is(err, gotdict.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, gotdict.ErrWordNotFound),
		errors.Is(err, gotdict.ErrNoDefinition),
		errors.Is(err, naver.ErrMeaningNotFound),
		errors.Is(err, wordlist.ErrEmptyList):
		return http.StatusNotFound
	case errors.Is(err, gotdict.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &netErr), errors.As(err, &upErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				level := slog.LevelInfo
				switch {
				case ww.Status() >= 500:
					level = slog.LevelError
				case ww.Status() >= 400:
					level = slog.LevelWarn
				}
				logger.LogAttrs(r.Context(), level, "request completed",
					slog.String("request_id", chimiddleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes_out", ww.BytesWritten()),
					slog.Duration("latency", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
