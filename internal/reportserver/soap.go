package reportserver

import (
	"encoding/xml"

	"github.com/openkcm/rs-cli/internal/constants"
	"github.com/openkcm/rs-cli/internal/errs"
)

const (
	soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	soapContentType       = "text/xml; charset=utf-8"
)

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soap:Envelope"`
	SoapNS  string      `xml:"xmlns:soap,attr"`
	XsiNS   string      `xml:"xmlns:xsi,attr"`
	XsdNS   string      `xml:"xmlns:xsd,attr"`
	Body    requestBody `xml:"soap:Body"`
}

type requestBody struct {
	Content any
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    responseBody `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type responseBody struct {
	Fault   *Fault `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
	Content []byte `xml:",innerxml"`
}

// soapAction returns the quoted SOAPAction header value for an operation
func soapAction(operation string) string {
	return `"` + constants.ReportServerNamespace + "/" + operation + `"`
}

func encodeEnvelope(content any) ([]byte, error) {
	env := requestEnvelope{
		SoapNS: soapEnvelopeNamespace,
		XsiNS:  "http://www.w3.org/2001/XMLSchema-instance",
		XsdNS:  "http://www.w3.org/2001/XMLSchema",
		Body:   requestBody{Content: content},
	}

	body, err := xml.Marshal(env)
	if err != nil {
		return nil, errs.Wrap(ErrEncodeEnvelope, err)
	}

	return append([]byte(xml.Header), body...), nil
}

// decodeEnvelope returns the fault carried by data, if any, and otherwise
// unmarshals the body content into out. A nil out ignores the content.
func decodeEnvelope(data []byte, out any) error {
	var env responseEnvelope

	err := xml.Unmarshal(data, &env)
	if err != nil {
		return errs.Wrap(ErrDecodeEnvelope, err)
	}

	if env.Body.Fault != nil {
		return env.Body.Fault
	}

	if out == nil {
		return nil
	}

	err = xml.Unmarshal(env.Body.Content, out)
	if err != nil {
		return errs.Wrap(ErrDecodeEnvelope, err)
	}

	return nil
}
