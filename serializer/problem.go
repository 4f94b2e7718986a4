package serializer

import (
	"net/http"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// ErrorResponse builds an NGSI-LD problem details object.
func ErrorResponse(status int, title, detail string) *tree.Node {
	return problemNode(tree.NewBuilder(0), status, title, detail)
}

func problemNode(b *tree.Builder, status int, title, detail string) *tree.Node {
	n := b.Object("")
	_ = n.Add(
		b.String("type", vocabulary.ErrorTypeForStatus(status)),
		b.String("title", title),
		b.String("detail", detail),
	)
	return n
}

// ErrorResponseFor turns an error returned by Serialize into a response.
// Invalid input maps to 400, anything else to 500.
func ErrorResponseFor(err error) *Response {
	status, title := problemFor(err)
	return &Response{
		Tree:       ErrorResponse(status, title, err.Error()),
		StatusCode: status,
		MimeType:   vocabulary.MimeTypeJSON,
	}
}

func problemFor(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrTooManyResults):
		return http.StatusInternalServerError, "More than one hit"
	case errors.Is(err, errors.ErrContextBuild):
		return http.StatusBadRequest, "Unable to create context"
	case errors.Is(err, errors.ErrUnsupportedContextShape):
		return http.StatusBadRequest, "Unsupported @context shape"
	case errors.IsInvalid(err):
		return http.StatusBadRequest, "Bad Request"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}

// backendStatus is the HTTP status of a response replaced by a backend
// error. Only "not found" on a single-entity request is passed through.
func backendStatus(code entity.ErrorCode, oneHit bool) int {
	if oneHit && code.StatusCode() == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
