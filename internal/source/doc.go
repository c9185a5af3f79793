// Package source loads the catalogue document.
//
// # Overview
//
// A Client reads one static JSON document, either from the local filesystem
// or over HTTP(S), and decodes it into catalog.Record values. It is invoked
// once at startup and again only when the user explicitly asks for a reload.
// No request is ever retried.
//
//	client, err := source.NewClient("products.json")
//	if err != nil {
//		return err
//	}
//	records, err := client.Load(ctx)
//
// # Errors
//
// Every load failure is a *LoadError:
//
//   - OpFetch: the file or host is unreachable, or ctx was cancelled
//   - OpStatus: the server answered with a non-2xx status
//   - OpDecode: the body is not a JSON array of record objects
//
// Callers treat all three the same way; Op exists for diagnostics.
//
// # Timeouts
//
// Remote loads have no timeout unless WithTimeout is given. Cancelling the
// context passed to Load aborts the request.
//
// # Document links
//
// ResolveLink turns a record's relative pdf value into an absolute URL or
// path, relative to the catalogue document itself.
package source
