package testutils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkcm/rs-cli/internal/constants"
)

// SOAPRequest is one call captured by a SOAPServer
type SOAPRequest struct {
	Action   string
	Body     string
	Username string
	Password string
}

// SOAPHandler answers one SOAP operation with a status code and a response body
type SOAPHandler func(req SOAPRequest) (int, string)

// SOAPServer is an httptest server speaking just enough SOAP 1.1 to stand in
// for ReportService2010.asmx
type SOAPServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]SOAPHandler
	requests []SOAPRequest
}

func NewSOAPServer(t *testing.T) *SOAPServer {
	t.Helper()

	s := &SOAPServer{handlers: make(map[string]SOAPHandler)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		action := strings.Trim(r.Header.Get("SOAPAction"), `"`)
		action = strings.TrimPrefix(action, constants.ReportServerNamespace+"/")

		user, pass, _ := r.BasicAuth()
		req := SOAPRequest{Action: action, Body: string(body), Username: user, Password: pass}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		handler, ok := s.handlers[action]
		s.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(SOAPFault("rsOperationNotSupported", "unexpected action "+action)))

			return
		}

		status, resp := handler(req)
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(status)
		_, err = w.Write([]byte(resp))
		assert.NoError(t, err)
	}))
	t.Cleanup(s.Close)

	return s
}

// Handle registers the handler for a SOAP operation name, e.g. "DeleteItem"
func (s *SOAPServer) Handle(action string, handler SOAPHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[action] = handler
}

// Respond registers a static successful response for an operation
func (s *SOAPServer) Respond(action, inner string) {
	s.Handle(action, func(_ SOAPRequest) (int, string) {
		return http.StatusOK, SOAPEnvelope(inner)
	})
}

// Requests returns the captured calls in arrival order
func (s *SOAPServer) Requests() []SOAPRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SOAPRequest(nil), s.requests...)
}

// SOAPEnvelope wraps inner in a SOAP 1.1 envelope
func SOAPEnvelope(inner string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
		`xmlns:xsd="http://www.w3.org/2001/XMLSchema">` +
		`<soap:Body>` + inner + `</soap:Body></soap:Envelope>`
}

// SOAPFault builds the fault SSRS returns for a failing operation
func SOAPFault(errorCode, message string) string {
	return SOAPEnvelope(fmt.Sprintf(`<soap:Fault>`+
		`<faultcode>soap:Server</faultcode>`+
		`<faultstring>System.Web.Services.Protocols.SoapException: %[2]s</faultstring>`+
		`<detail>`+
		`<ErrorCode xmlns="%[3]s">%[1]s</ErrorCode>`+
		`<HttpStatus xmlns="%[3]s">400</HttpStatus>`+
		`<Message xmlns="%[3]s">%[2]s</Message>`+
		`</detail></soap:Fault>`, errorCode, message, constants.ReportServerNamespace))
}
