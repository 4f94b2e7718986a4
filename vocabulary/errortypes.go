package vocabulary

import "net/http"

// NGSI-LD problem detail types
const (
	ErrorTypeInvalidRequest          = NGSILDNamespace + "errors/InvalidRequest"
	ErrorTypeBadRequestData          = NGSILDNamespace + "errors/BadRequestData"
	ErrorTypeAlreadyExists           = NGSILDNamespace + "errors/AlreadyExists"
	ErrorTypeOperationNotSupported   = NGSILDNamespace + "errors/OperationNotSupported"
	ErrorTypeResourceNotFound        = NGSILDNamespace + "errors/ResourceNotFound"
	ErrorTypeInternalError           = NGSILDNamespace + "errors/InternalError"
	ErrorTypeTooComplexQuery         = NGSILDNamespace + "errors/TooComplexQuery"
	ErrorTypeTooManyResults          = NGSILDNamespace + "errors/TooManyResults"
	ErrorTypeLdContextNotAvailable   = NGSILDNamespace + "errors/LdContextNotAvailable"
	ErrorTypeNoMultiTenantSupport    = NGSILDNamespace + "errors/NoMultiTenantSupport"
	ErrorTypeNonexistentTenant       = NGSILDNamespace + "errors/NonexistentTenant"
	ErrorTypeUnsupportedMediaType    = NGSILDNamespace + "errors/UnsupportedMediaType"
	ErrorTypeNotAcceptable           = NGSILDNamespace + "errors/NotAcceptable"
	ErrorTypeMethodNotAllowed        = NGSILDNamespace + "errors/MethodNotAllowed"
	ErrorTypeRequestEntityTooLarge   = NGSILDNamespace + "errors/RequestEntityTooLarge"
	ErrorTypeServiceUnavailable      = NGSILDNamespace + "errors/ServiceUnavailable"
	ErrorTypeLinkHeaderNotSupported  = NGSILDNamespace + "errors/LinkHeaderNotSupported"
	ErrorTypeGatewayTimeout          = NGSILDNamespace + "errors/GatewayTimeout"
)

var errorTypeByStatus = map[int]string{
	http.StatusBadRequest:            ErrorTypeBadRequestData,
	http.StatusNotFound:              ErrorTypeResourceNotFound,
	http.StatusMethodNotAllowed:      ErrorTypeMethodNotAllowed,
	http.StatusNotAcceptable:         ErrorTypeNotAcceptable,
	http.StatusConflict:              ErrorTypeAlreadyExists,
	http.StatusRequestEntityTooLarge: ErrorTypeRequestEntityTooLarge,
	http.StatusUnsupportedMediaType:  ErrorTypeUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrorTypeOperationNotSupported,
	http.StatusNotImplemented:        ErrorTypeOperationNotSupported,
	http.StatusServiceUnavailable:    ErrorTypeServiceUnavailable,
	http.StatusGatewayTimeout:        ErrorTypeGatewayTimeout,
}

// ErrorTypeForStatus maps an HTTP status code to its NGSI-LD error type.
// Unknown codes map to InternalError.
func ErrorTypeForStatus(status int) string {
	if t, ok := errorTypeByStatus[status]; ok {
		return t
	}
	return ErrorTypeInternalError
}
