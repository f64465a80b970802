package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error. The
	// order book's caller-contract violations (spec §7 item 2) are
	// reported under this code.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"

	// KafkaReadError represents an error reading a message off a Kafka topic.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaWriteError represents an error writing a message to a Kafka topic.
	KafkaWriteError ErrorCode = "kafka_write_error"
)

// BaseError is an `error` type containing a list of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError creates a BaseError from one or more ErrorDetails.
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails appends more ErrorDetails to the BaseError.
func (b *BaseError) AddErrorDetails(details ...*ErrorDetails) {
	b.details = append(b.details, details...)
}

// GetDetails returns the ErrorDetails held by this BaseError.
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implements the error interface.
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAnyCodeEqual reports whether any ErrorDetails on this BaseError
// carries the given code.
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.details {
		if d.Code == code {
			return true
		}
	}
	return false
}
