package endpoint

import (
	"fmt"
	"strings"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
)

// MimeType is the payload format a receiver accepts.
type MimeType int

const (
	MimeJSON MimeType = iota
	MimeJSONLD
)

func (m MimeType) String() string {
	switch m {
	case MimeJSONLD:
		return "application/ld+json"
	default:
		return "application/json"
	}
}

// HttpInfo is a validated endpoint.
type HttpInfo struct {
	URL      string
	MimeType MimeType
}

const (
	fieldURI    = "uri"
	fieldAccept = "accept"

	acceptPrefix = "application/"
)

// ValidationError describes why an endpoint was rejected.
type ValidationError struct {
	Title  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validator parses endpoints and records the outcome in metrics.
type Validator struct {
	metrics *metric.Metrics
}

// NewValidator creates a Validator. metrics may be nil.
func NewValidator(metrics *metric.Metrics) *Validator {
	return &Validator{metrics: metrics}
}

// Parse validates an endpoint object.
func Parse(node *tree.Node) (HttpInfo, error) {
	return (&Validator{}).Parse(node)
}

// ParseJSON parses and validates a JSON endpoint object.
func ParseJSON(data []byte) (HttpInfo, error) {
	return (&Validator{}).ParseJSON(data)
}

// ParseJSON parses data into a tree and validates it.
func (v *Validator) ParseJSON(data []byte) (HttpInfo, error) {
	node, err := tree.Parse(data)
	if err != nil {
		v.metrics.RecordEndpointValidation("parse_error")
		return HttpInfo{}, errors.WrapInvalid(err, "Validator", "ParseJSON", "parse endpoint")
	}
	return v.Parse(node)
}

// Parse validates node. The default MimeType is MimeJSON.
func (v *Validator) Parse(node *tree.Node) (HttpInfo, error) {
	info, err := parse(node)
	v.metrics.RecordEndpointValidation(resultLabel(err))
	return info, err
}

func parse(node *tree.Node) (HttpInfo, error) {
	info := HttpInfo{MimeType: MimeJSON}

	if node == nil || node.Kind() != tree.KindObject {
		kind := "nothing"
		if node != nil {
			kind = node.Kind().String()
		}
		return info, &ValidationError{Title: "Not a JSON Object", Detail: "Endpoint is " + kind, Err: errors.ErrTypeMismatch}
	}

	var seenURI, seenAccept bool
	for _, item := range node.Children() {
		switch item.Name() {
		case fieldURI:
			if err := checkField(item, "Endpoint::uri", &seenURI); err != nil {
				return info, err
			}
			if !IsURL(item.Str()) && !IsURN(item.Str()) {
				return info, &ValidationError{Title: "Invalid Endpoint::uri", Detail: "Not a URL nor a URN", Err: errors.ErrInvalidValue}
			}
			info.URL = item.Str()

		case fieldAccept:
			if err := checkField(item, "Endpoint::accept", &seenAccept); err != nil {
				return info, err
			}
			mime, err := parseAccept(item.Str())
			if err != nil {
				return info, err
			}
			info.MimeType = mime

		default:
			return info, &ValidationError{Title: "Unrecognized field in Endpoint", Detail: item.Name(), Err: errors.ErrUnrecognizedField}
		}
	}

	if !seenURI {
		return info, &ValidationError{Title: "Mandatory field missing", Detail: "Endpoint::uri", Err: errors.ErrMissingRequiredField}
	}
	return info, nil
}

// checkField rejects a second occurrence of a field, then a non-string value.
func checkField(item *tree.Node, label string, seen *bool) error {
	if *seen {
		return &ValidationError{Title: "Duplicated field", Detail: label, Err: errors.ErrDuplicateField}
	}
	*seen = true
	if item.Kind() != tree.KindString {
		return &ValidationError{Title: "Not a JSON String", Detail: label, Err: errors.ErrTypeMismatch}
	}
	return nil
}

func parseAccept(accept string) (MimeType, error) {
	invalid := &ValidationError{Title: "Invalid Endpoint::accept value", Detail: accept, Err: errors.ErrInvalidValue}

	sub, ok := strings.CutPrefix(accept, acceptPrefix)
	if !ok {
		return MimeJSON, invalid
	}
	switch sub {
	case "json":
		return MimeJSON, nil
	case "ld+json":
		return MimeJSONLD, nil
	default:
		return MimeJSON, invalid
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errors.ErrDuplicateField):
		return "duplicate_field"
	case errors.Is(err, errors.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, errors.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, errors.ErrUnrecognizedField):
		return "unrecognized_field"
	case errors.Is(err, errors.ErrMissingRequiredField):
		return "missing_field"
	default:
		return "error"
	}
}
