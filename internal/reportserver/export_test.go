package reportserver

var (
	EncodeEnvelope = encodeEnvelope
	DecodeEnvelope = decodeEnvelope
	SoapAction     = soapAction
)

type DeleteItemRequest = deleteItemRequest

type SetPoliciesRequest = setPoliciesRequest

type PolicyList = policyList

type GetPoliciesResponse = getPoliciesResponse
