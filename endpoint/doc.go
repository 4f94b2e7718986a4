// Package endpoint validates notification endpoint descriptors.
//
// An endpoint is a JSON object with a mandatory "uri" and an optional
// "accept" member:
//
//	{"uri": "http://receiver:8080/notify", "accept": "application/ld+json"}
//
// Parse walks the members in order and stops at the first problem. Every
// failure is a *ValidationError whose Title mirrors the broker's error
// responses and whose Err is one of the errors package sentinels
// (ErrDuplicateField, ErrTypeMismatch, ErrInvalidValue, ErrUnrecognizedField,
// ErrMissingRequiredField), so callers can branch with errors.Is.
package endpoint
