package reportserver

import (
	"errors"
	"fmt"

	"github.com/openkcm/rs-cli/internal/constants"
)

var (
	ErrEmptyURI         = errors.New("report server uri is empty")
	ErrInvalidURI       = errors.New("report server uri is invalid")
	ErrLoadURI          = errors.New("failed to load report server uri")
	ErrLoadCredentials  = errors.New("failed to load report server credentials")
	ErrLoadMTLSConfig   = errors.New("failed to load mtls config")
	ErrUnsupportedAuth  = errors.New("report server auth not implemented")
	ErrEncodeEnvelope   = errors.New("failed to encode soap envelope")
	ErrDecodeEnvelope   = errors.New("failed to decode soap envelope")
	ErrRequestFailed    = errors.New("report server request failed")
	ErrUnauthorized     = errors.New("report server rejected the credentials")
	ErrUnexpectedStatus = errors.New("unexpected report server response status")

	ErrItemNotFound = errors.New("catalog item not found")
	ErrAccessDenied = errors.New("access denied")
)

// Fault is a SOAP 1.1 fault as returned by ReportService2010
type Fault struct {
	Code   string      `xml:"faultcode"`
	String string      `xml:"faultstring"`
	Detail FaultDetail `xml:"detail"`
}

// FaultDetail carries the SSRS specific part of a fault
type FaultDetail struct {
	ErrorCode  string `xml:"ErrorCode"`
	HTTPStatus string `xml:"HttpStatus"`
	Message    string `xml:"Message"`
}

func (f *Fault) Error() string {
	if f.Detail.Message == "" {
		return f.String
	}

	if f.Detail.ErrorCode == "" {
		return f.Detail.Message
	}

	return fmt.Sprintf("%s (%s)", f.Detail.Message, f.Detail.ErrorCode)
}

// Is maps well known SSRS error codes onto sentinel errors
func (f *Fault) Is(target error) bool {
	switch target {
	case ErrItemNotFound:
		return f.Detail.ErrorCode == constants.FaultCodeItemNotFound
	case ErrAccessDenied:
		return f.Detail.ErrorCode == constants.FaultCodeAccessDenied
	default:
		return false
	}
}

// NewFault builds a fault the way SSRS reports it
func NewFault(errorCode, message string) *Fault {
	return &Fault{
		Code:   "soap:Server",
		String: "System.Web.Services.Protocols.SoapException: " + message,
		Detail: FaultDetail{
			ErrorCode: errorCode,
			Message:   message,
		},
	}
}

// NewItemNotFoundFault is the fault SSRS returns for an unknown path
func NewItemNotFoundFault(path string) *Fault {
	return NewFault(
		constants.FaultCodeItemNotFound,
		fmt.Sprintf("The item '%s' cannot be found.", path),
	)
}
