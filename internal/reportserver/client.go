package reportserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/constants"
	"github.com/openkcm/rs-cli/internal/errs"
	"github.com/openkcm/rs-cli/internal/log"
)

// Operation names of ReportService2010 used by this client
const (
	OpGetDataSourceContents = "GetDataSourceContents"
	OpSetDataSourceContents = "SetDataSourceContents"
	OpDeleteItem            = "DeleteItem"
	OpGetPolicies           = "GetPolicies"
	OpSetPolicies           = "SetPolicies"
)

// Client is a proxy to the ReportService2010 SOAP endpoint of one report server
type Client struct {
	http     *resty.Client
	endpoint string
}

// NewClient builds a proxy from the report server configuration. No call is
// made to the server until the first operation.
func NewClient(cfg config.ReportServer) (*Client, error) {
	uri, err := loadURI(cfg)
	if err != nil {
		return nil, err
	}

	endpoint, err := ServiceEndpoint(uri)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetTimeout(cfg.EffectiveTimeout()).
		SetRetryCount(0).
		SetHeader("Content-Type", soapContentType)

	err = configureAuth(httpClient, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:     httpClient,
		endpoint: endpoint,
	}, nil
}

// Endpoint returns the full URL of the SOAP endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ServiceEndpoint turns a report server URI into the URL of
// ReportService2010.asmx. URIs that already point to an .asmx are kept.
func ServiceEndpoint(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrEmptyURI
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", errs.Wrap(ErrInvalidURI, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errs.Wrapf(ErrInvalidURI, uri)
	}

	if !strings.HasSuffix(strings.ToLower(u.Path), ".asmx") {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + constants.ReportServiceEndpoint
	}

	return u.String(), nil
}

func (c *Client) GetDataSourceContents(ctx context.Context, path string) (*DataSourceDefinition, error) {
	var resp getDataSourceContentsResponse

	err := c.call(ctx, OpGetDataSourceContents, &getDataSourceContentsRequest{DataSource: path}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp.Definition, nil
}

func (c *Client) SetDataSourceContents(ctx context.Context, path string, definition *DataSourceDefinition) error {
	return c.call(ctx, OpSetDataSourceContents, &setDataSourceContentsRequest{
		DataSource: path,
		Definition: definition,
	}, nil)
}

func (c *Client) DeleteItem(ctx context.Context, path string) error {
	return c.call(ctx, OpDeleteItem, &deleteItemRequest{ItemPath: path}, nil)
}

// GetPolicies returns the policies of an item and whether they are inherited
// from the parent folder
func (c *Client) GetPolicies(ctx context.Context, path string) ([]Policy, bool, error) {
	var resp getPoliciesResponse

	err := c.call(ctx, OpGetPolicies, &getPoliciesRequest{ItemPath: path}, &resp)
	if err != nil {
		return nil, false, err
	}

	return resp.Policies, resp.InheritParent, nil
}

func (c *Client) SetPolicies(ctx context.Context, path string, policies []Policy) error {
	return c.call(ctx, OpSetPolicies, &setPoliciesRequest{
		ItemPath: path,
		Policies: policyList{Policy: policies},
	}, nil)
}

func (c *Client) call(ctx context.Context, operation string, req, resp any) error {
	ctx = log.InjectSOAPAction(ctx, operation)

	payload, err := encodeEnvelope(req)
	if err != nil {
		return err
	}

	log.Debug(ctx, "Calling report server", slog.String("endpoint", c.endpoint))

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("SOAPAction", soapAction(operation)).
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return errs.Wrap(ErrRequestFailed, err)
	}

	if res.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	err = decodeEnvelope(res.Body(), resp)

	var fault *Fault
	if errors.As(err, &fault) {
		log.Debug(ctx, "Report server returned a fault",
			slog.String("errorCode", fault.Detail.ErrorCode),
			slog.Int("status", res.StatusCode()),
		)

		return fault
	}

	if res.IsError() {
		return errs.Wrapf(ErrUnexpectedStatus, res.Status())
	}

	return err
}
