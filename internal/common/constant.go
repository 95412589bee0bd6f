package common

// RequestIDHeaderName is the gRPC metadata key (and HTTP header) carrying
// the request id between the account service and the credential service.
const RequestIDHeaderName = "x-request-id"

// DefaultSaltSize is the salt length, in bytes, used when none is configured.
const DefaultSaltSize = 32
