package reportserver

import (
	"encoding/xml"
	"strings"
)

// DataSourceDefinition is the connection and credential payload of a shared
// data source. Field order follows the ReportService2010 schema sequence.
type DataSourceDefinition struct {
	Extension                            string `xml:"Extension,omitempty" json:"extension,omitempty"`
	ConnectString                        string `xml:"ConnectString,omitempty" json:"connectString,omitempty"`
	UseOriginalConnectString             bool   `xml:"UseOriginalConnectString" json:"useOriginalConnectString"`
	OriginalConnectStringExpressionBased bool   `xml:"OriginalConnectStringExpressionBased" json:"originalConnectStringExpressionBased"`
	CredentialRetrieval                  string `xml:"CredentialRetrieval,omitempty" json:"credentialRetrieval,omitempty"`
	WindowsCredentials                   bool   `xml:"WindowsCredentials" json:"windowsCredentials"`
	ImpersonateUser                      bool   `xml:"ImpersonateUser" json:"impersonateUser"`
	Prompt                               string `xml:"Prompt,omitempty" json:"prompt,omitempty"`
	UserName                             string `xml:"UserName,omitempty" json:"userName,omitempty"`
	Password                             string `xml:"Password" json:"-"`
	Enabled                              bool   `xml:"Enabled" json:"enabled"`
}

// Role is a named set of tasks that can be granted on a catalog item
type Role struct {
	Name        string `xml:"Name" json:"name"`
	Description string `xml:"Description,omitempty" json:"description,omitempty"`
}

// Policy pairs a user or group with the roles granted to it
type Policy struct {
	GroupUserName string `xml:"GroupUserName" json:"groupUserName"`
	Roles         []Role `xml:"Roles>Role" json:"roles"`
}

// Matches reports whether the policy belongs to identity. Windows account
// names are case-insensitive.
func (p Policy) Matches(identity string) bool {
	return strings.EqualFold(p.GroupUserName, identity)
}

// HasRole reports whether the policy grants the named role
func (p Policy) HasRole(name string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}

	return false
}

type getDataSourceContentsRequest struct {
	XMLName    xml.Name `xml:"http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer GetDataSourceContents"`
	DataSource string   `xml:"DataSource"`
}

type getDataSourceContentsResponse struct {
	XMLName    xml.Name             `xml:"GetDataSourceContentsResponse"`
	Definition DataSourceDefinition `xml:"Definition"`
}

type setDataSourceContentsRequest struct {
	XMLName    xml.Name              `xml:"http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer SetDataSourceContents"`
	DataSource string                `xml:"DataSource"`
	Definition *DataSourceDefinition `xml:"Definition"`
}

type deleteItemRequest struct {
	XMLName  xml.Name `xml:"http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer DeleteItem"`
	ItemPath string   `xml:"ItemPath"`
}

type getPoliciesRequest struct {
	XMLName  xml.Name `xml:"http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer GetPolicies"`
	ItemPath string   `xml:"ItemPath"`
}

type getPoliciesResponse struct {
	XMLName       xml.Name `xml:"GetPoliciesResponse"`
	Policies      []Policy `xml:"Policies>Policy"`
	InheritParent bool     `xml:"InheritParent"`
}

// policyList always renders <Policies>, even when empty, so that revoking the
// last policy submits an empty list instead of a missing parameter.
type policyList struct {
	Policy []Policy `xml:"Policy"`
}

type setPoliciesRequest struct {
	XMLName  xml.Name   `xml:"http://schemas.microsoft.com/sqlserver/reporting/2010/03/01/ReportServer SetPolicies"`
	ItemPath string     `xml:"ItemPath"`
	Policies policyList `xml:"Policies"`
}
