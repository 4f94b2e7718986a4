// Package httppool provides pooled HTTP GET for remote JSON-LD context documents.
//
// A Pool keeps up to PoolSize client handles per host. Get checks out an idle
// handle (or creates one, or waits for one), performs the request with a
// single timeout covering checkout, connect and transfer, streams the body
// into a buffer.ResponseBuffer and always returns the handle to its host.
//
// Basic usage:
//
//	pool, err := httppool.New(httppool.WithPoolSize(4))
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	buf, err := pool.Get(ctx, "https://example.org/context.jsonld", 5*time.Second)
//	if err != nil {
//	    return err // ErrURLParse, ErrTimeout or ErrTransportFailure
//	}
//	defer buf.Release()
//
// Loader adapts a Pool to json-gold's ld.DocumentLoader so that context
// documents can be fetched by anything that accepts one.
//
// Errors are classified: malformed URLs are invalid, timeouts and transport
// failures are transient. No request is retried.
package httppool
