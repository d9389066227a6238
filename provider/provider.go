// Package provider implements remote translation backends.
package provider

import "github.com/ZaguanLabs/gotdict"

// Backend is the interface for remote translation services.
// This is an alias to the main package interface for convenience.
type Backend = gotdict.TranslationBackend

// TranslateRequest is an alias to the main package type.
type TranslateRequest = gotdict.TranslateRequest

func sourceLang(req TranslateRequest) string {
	if req.SourceLang == "" {
		return gotdict.DefaultSourceLang
	}
	return gotdict.BaseLanguage(req.SourceLang)
}

func targetLang(req TranslateRequest) string {
	if req.TargetLang == "" {
		return gotdict.DefaultTargetLang
	}
	return gotdict.BaseLanguage(req.TargetLang)
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}
