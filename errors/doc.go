// Package errors provides standardized error handling for the NGSI-LD broker core.
//
// # Overview
//
// Errors fall into three classes: Transient (remote fetch timeouts and transport
// failures, which a calling layer may choose to retry), Invalid (malformed input such as a
// bad @context, a bad endpoint descriptor or an unparsable URL) and Fatal (internal
// contract violations such as more than one hit for a single-entity request).
//
// Nothing in the core retries internally. Classification only tells the caller what
// kind of response to produce.
//
// # Sentinel kinds
//
// Each failure surfaced by the core matches one sentinel through errors.Is:
//
//   - Context resolution: ErrContextBuild, ErrUnsupportedContextShape
//   - Serialization: ErrTooManyResults, ErrOutOfMemory
//   - Endpoint validation: ErrUnrecognizedField, ErrDuplicateField, ErrTypeMismatch,
//     ErrInvalidValue, ErrMissingRequiredField
//   - Remote fetch: ErrTimeout, ErrTransportFailure, ErrURLParse
//
// # Error Wrapping Pattern
//
// All wrapping follows the format:
//
//	"component.method: action failed: %w"
//
// Three wrappers set the class while keeping the chain intact:
//
//	errors.WrapTransient(err, "Pool", "Get", "perform request")
//	errors.WrapInvalid(errors.ErrURLParse, "Pool", "Get", "parse url")
//	errors.WrapFatal(errors.ErrTooManyResults, "Serializer", "Serialize", "check hit count")
//
// Callers inspect results with errors.Is for the kind and IsTransient/IsInvalid/IsFatal
// (or Classify) for the class:
//
//	buf, err := pool.Get(ctx, url, timeout)
//	if errors.Is(err, errors.ErrTimeout) {
//	    // report a gateway timeout
//	}
package errors
