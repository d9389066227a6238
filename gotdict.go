// Package gotdict looks up English words in a public dictionary API and
// enriches the definitions with Korean translations.
//
// A Service normalizes the word, serves repeated lookups from a bounded
// definition cache, fetches and shapes fresh entries, and runs every
// definition and example through a Resolver. The Resolver tries a built-in
// static table, a bounded translation cache, a pluggable TranslationBackend
// and finally a small heuristic fallback, so translation never fails a lookup.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gotdict"
//	    "github.com/ZaguanLabs/gotdict/dictionary"
//	    "github.com/ZaguanLabs/gotdict/provider"
//	)
//
//	func main() {
//	    backend := provider.NewChain(
//	        provider.NewGoogle(provider.GoogleConfig{}),
//	        provider.NewMyMemory(provider.MyMemoryConfig{}),
//	    )
//
//	    svc := gotdict.NewService(dictionary.NewClient(dictionary.Config{}),
//	        gotdict.WithResolver(gotdict.NewResolver(gotdict.WithBackend(backend))),
//	    )
//
//	    entries, err := svc.LookupWord(context.Background(), "Explain")
//	    if err != nil {
//	        log.Fatal(gotdict.ErrorMessage(err))
//	    }
//	    fmt.Println(entries[0].Meanings[0].Definitions[0].KoreanDefinition)
//	}
package gotdict
