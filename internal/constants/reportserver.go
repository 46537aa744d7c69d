package constants

const (
	// ReportServerNamespace is the target namespace of ReportService2010.asmx
	ReportServerNamespace = "http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer"
	ReportServiceEndpoint = "ReportService2010.asmx"
)

// CredentialRetrieval values of a data source definition
const (
	CredentialRetrievalPrompt     = "Prompt"
	CredentialRetrievalStore      = "Store"
	CredentialRetrievalIntegrated = "Integrated"
	CredentialRetrievalNone       = "None"
)

// SSRS fault error codes mapped to sentinel errors
const (
	FaultCodeItemNotFound = "rsItemNotFound"
	FaultCodeAccessDenied = "rsAccessDenied"
)
