package reportserver_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/reportserver"
	"github.com/openkcm/rs-cli/internal/testutils"
)

const ns = `xmlns="http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer"`

func newClient(t *testing.T, server *testutils.SOAPServer) *reportserver.Client {
	t.Helper()

	client, err := reportserver.NewClient(testutils.ReportServerConfig(server.URL + "/reportserver"))
	require.NoError(t, err)

	return client
}

func TestServiceEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		expErr   error
	}{
		{
			name:     "Report server root",
			uri:      "http://localhost/reportserver",
			expected: "http://localhost/reportserver/ReportService2010.asmx",
		},
		{
			name:     "Trailing slash",
			uri:      "https://reports.contoso.com/ReportServer/",
			expected: "https://reports.contoso.com/ReportServer/ReportService2010.asmx",
		},
		{
			name:     "Explicit endpoint",
			uri:      "http://localhost/reportserver/ReportService2010.asmx",
			expected: "http://localhost/reportserver/ReportService2010.asmx",
		},
		{
			name:   "Empty uri",
			uri:    "  ",
			expErr: reportserver.ErrEmptyURI,
		},
		{
			name:   "Missing scheme",
			uri:    "localhost/reportserver",
			expErr: reportserver.ErrInvalidURI,
		},
		{
			name:   "Unsupported scheme",
			uri:    "ftp://localhost/reportserver",
			expErr: reportserver.ErrInvalidURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := reportserver.ServiceEndpoint(tt.uri)
			if tt.expErr != nil {
				assert.ErrorIs(t, err, tt.expErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, endpoint)
		})
	}
}

func TestNewClient(t *testing.T) {
	mutator := testutils.NewMutator(func() config.ReportServer {
		return testutils.ReportServerConfig("http://localhost/reportserver")
	})

	tests := []struct {
		name          string
		cfg           config.ReportServer
		expErr        error
		errorContains string
	}{
		{
			name: "Basic auth",
			cfg:  mutator(),
		},
		{
			name: "Basic auth with NTLM",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.NTLM = true
			}),
		},
		{
			name: "Insecure",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.Auth = commoncfg.SecretRef{Type: commoncfg.InsecureSecretType}
			}),
		},
		{
			name: "Insecure with NTLM",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.Auth = commoncfg.SecretRef{Type: commoncfg.InsecureSecretType}
				rs.NTLM = true
			}),
			expErr: config.ErrNTLMRequiresBasic,
		},
		{
			name: "Non-supported auth",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.Auth = commoncfg.SecretRef{Type: commoncfg.OAuth2SecretType}
			}),
			expErr:        reportserver.ErrUnsupportedAuth,
			errorContains: "report server auth not implemented",
		},
		{
			name: "MTLS auth with bad cert",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.Auth = commoncfg.SecretRef{
					Type: commoncfg.MTLSSecretType,
					MTLS: commoncfg.MTLS{
						Cert: commoncfg.SourceRef{
							Source: commoncfg.EmbeddedSourceValue,
							Value:  "bad"},
						CertKey: commoncfg.SourceRef{
							Source: commoncfg.EmbeddedSourceValue,
							Value:  "bad"},
					},
				}
			}),
			expErr: reportserver.ErrLoadMTLSConfig,
		},
		{
			name: "Empty uri",
			cfg: mutator(func(rs *config.ReportServer) {
				rs.URI.Value = ""
			}),
			expErr: reportserver.ErrEmptyURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := reportserver.NewClient(tt.cfg)
			if tt.expErr != nil {
				assert.ErrorIs(t, err, tt.expErr)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, client)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "http://localhost/reportserver/ReportService2010.asmx", client.Endpoint())
		})
	}
}

func TestGetDataSourceContents(t *testing.T) {
	server := testutils.NewSOAPServer(t)
	server.Respond("GetDataSourceContents", `<GetDataSourceContentsResponse `+ns+`><Definition>`+
		`<Extension>SQL</Extension>`+
		`<ConnectString>Data Source=db01;Initial Catalog=Sales</ConnectString>`+
		`<UseOriginalConnectString>false</UseOriginalConnectString>`+
		`<OriginalConnectStringExpressionBased>false</OriginalConnectStringExpressionBased>`+
		`<CredentialRetrieval>Store</CredentialRetrieval>`+
		`<WindowsCredentials>true</WindowsCredentials>`+
		`<ImpersonateUser>false</ImpersonateUser>`+
		`<UserName>CONTOSO\sales</UserName>`+
		`<Enabled>true</Enabled>`+
		`</Definition></GetDataSourceContentsResponse>`)

	client := newClient(t, server)

	def, err := client.GetDataSourceContents(t.Context(), "/Data Sources/Sales")
	require.NoError(t, err)

	assert.Equal(t, &reportserver.DataSourceDefinition{
		Extension:           "SQL",
		ConnectString:       "Data Source=db01;Initial Catalog=Sales",
		CredentialRetrieval: "Store",
		WindowsCredentials:  true,
		UserName:            `CONTOSO\sales`,
		Enabled:             true,
	}, def)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "GetDataSourceContents", requests[0].Action)
	assert.Contains(t, requests[0].Body, "<DataSource>/Data Sources/Sales</DataSource>")
	assert.Equal(t, testutils.TestUsername, requests[0].Username)
	assert.Equal(t, testutils.TestPassword, requests[0].Password)
}

func TestSetDataSourceContents(t *testing.T) {
	server := testutils.NewSOAPServer(t)
	server.Respond("SetDataSourceContents", `<SetDataSourceContentsResponse `+ns+`/>`)

	client := newClient(t, server)

	err := client.SetDataSourceContents(t.Context(), "/Data Sources/Sales", &reportserver.DataSourceDefinition{
		Extension:           "SQL",
		CredentialRetrieval: "Store",
		UserName:            "sales",
		Password:            "s3cr3t",
		Enabled:             true,
	})
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 1)
	body := requests[0].Body
	assert.Contains(t, body, "<DataSource>/Data Sources/Sales</DataSource>")
	assert.Contains(t, body, "<Password>s3cr3t</Password>")
	assert.Contains(t, body, "<CredentialRetrieval>Store</CredentialRetrieval>")
	assert.Less(t, strings.Index(body, "<UserName>"), strings.Index(body, "<Password>"))
}

func TestSetDataSourceContentsAlwaysSendsPassword(t *testing.T) {
	server := testutils.NewSOAPServer(t)
	server.Respond("SetDataSourceContents", `<SetDataSourceContentsResponse `+ns+`/>`)

	err := newClient(t, server).SetDataSourceContents(t.Context(), "/Data Sources/Sales", &reportserver.DataSourceDefinition{
		Extension:           "SQL",
		CredentialRetrieval: "Store",
	})
	require.NoError(t, err)

	body := server.Requests()[0].Body
	assert.Contains(t, body, "<Password></Password>")
	assert.NotContains(t, body, "<UserName>")
}

func TestDeleteItem(t *testing.T) {
	t.Run("Should delete item", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		server.Respond("DeleteItem", `<DeleteItemResponse `+ns+`/>`)

		err := newClient(t, server).DeleteItem(t.Context(), "/Reports/Old")
		require.NoError(t, err)
		assert.Contains(t, server.Requests()[0].Body, "<ItemPath>/Reports/Old</ItemPath>")
	})

	t.Run("Should return fault for missing item", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		server.Handle("DeleteItem", func(_ testutils.SOAPRequest) (int, string) {
			return http.StatusInternalServerError, testutils.SOAPFault("rsItemNotFound", "The item '/Reports/Old' cannot be found.")
		})

		err := newClient(t, server).DeleteItem(t.Context(), "/Reports/Old")
		assert.ErrorIs(t, err, reportserver.ErrItemNotFound)
		assert.Contains(t, err.Error(), "The item '/Reports/Old' cannot be found.")
	})
}

func TestGetPolicies(t *testing.T) {
	server := testutils.NewSOAPServer(t)
	server.Respond("GetPolicies", `<GetPoliciesResponse `+ns+`><Policies>`+
		`<Policy><GroupUserName>alice</GroupUserName><Roles><Role><Name>Browser</Name></Role></Roles></Policy>`+
		`<Policy><GroupUserName>bob</GroupUserName><Roles><Role><Name>Content Manager</Name></Role>`+
		`<Role><Name>Publisher</Name></Role></Roles></Policy>`+
		`</Policies><InheritParent>false</InheritParent></GetPoliciesResponse>`)

	policies, inherit, err := newClient(t, server).GetPolicies(t.Context(), "/Reports")
	require.NoError(t, err)

	assert.False(t, inherit)
	assert.Equal(t, []reportserver.Policy{
		{GroupUserName: "alice", Roles: []reportserver.Role{{Name: "Browser"}}},
		{GroupUserName: "bob", Roles: []reportserver.Role{{Name: "Content Manager"}, {Name: "Publisher"}}},
	}, policies)
}

func TestSetPolicies(t *testing.T) {
	server := testutils.NewSOAPServer(t)
	server.Respond("SetPolicies", `<SetPoliciesResponse `+ns+`/>`)

	err := newClient(t, server).SetPolicies(t.Context(), "/Reports", []reportserver.Policy{
		{GroupUserName: "alice", Roles: []reportserver.Role{{Name: "Browser"}}},
	})
	require.NoError(t, err)

	body := server.Requests()[0].Body
	assert.Contains(t, body, "<ItemPath>/Reports</ItemPath>")
	assert.Contains(t, body, "<Policy><GroupUserName>alice</GroupUserName><Roles><Role><Name>Browser</Name></Role></Roles></Policy>")
}

func TestCallErrors(t *testing.T) {
	t.Run("Should map 401 to unauthorized", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		server.Handle("DeleteItem", func(_ testutils.SOAPRequest) (int, string) {
			return http.StatusUnauthorized, ""
		})

		err := newClient(t, server).DeleteItem(t.Context(), "/Reports")
		assert.ErrorIs(t, err, reportserver.ErrUnauthorized)
	})

	t.Run("Should report unexpected status without fault", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		server.Handle("DeleteItem", func(_ testutils.SOAPRequest) (int, string) {
			return http.StatusBadGateway, "<html>bad gateway</html>"
		})

		err := newClient(t, server).DeleteItem(t.Context(), "/Reports")
		assert.ErrorIs(t, err, reportserver.ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("Should report malformed success body", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		server.Handle("GetPolicies", func(_ testutils.SOAPRequest) (int, string) {
			return http.StatusOK, "not xml"
		})

		_, _, err := newClient(t, server).GetPolicies(t.Context(), "/Reports")
		assert.ErrorIs(t, err, reportserver.ErrDecodeEnvelope)
	})

	t.Run("Should report transport failure", func(t *testing.T) {
		server := testutils.NewSOAPServer(t)
		cfg := testutils.ReportServerConfig(server.URL)
		cfg.Timeout = time.Second
		server.Close()

		client, err := reportserver.NewClient(cfg)
		require.NoError(t, err)

		err = client.DeleteItem(t.Context(), "/Reports")
		assert.ErrorIs(t, err, reportserver.ErrRequestFailed)
	})
}
