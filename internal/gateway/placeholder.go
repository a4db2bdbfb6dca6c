package gateway

import "strings"

// The gateway substitutes real values into literal ${id}/${refId} tokens
// in the callback URL. URL generators percent-encode those characters, so
// routes carrying the tokens in path parameters are generated with safe
// dummy tokens first and rewritten afterwards.
const (
	TransactionIDTemplate = "${id}"
	ReferenceIDTemplate   = "${refId}"

	dummyTransactionID = "__COMGATE_PLACEHOLDER_TRANSACTION_ID__"
	dummyReferenceID   = "__COMGATE_PLACEHOLDER_REFERENCE_ID__"
)

// replacePlaceholders swaps the dummy tokens in a generated URL back to
// the literal gateway templates.
func replacePlaceholders(url string) string {
	url = strings.ReplaceAll(url, dummyTransactionID, TransactionIDTemplate)
	return strings.ReplaceAll(url, dummyReferenceID, ReferenceIDTemplate)
}

// maskTemplates swaps literal gateway templates in a parameter value for
// dummy tokens that survive URL encoding unchanged.
func maskTemplates(value string) string {
	value = strings.ReplaceAll(value, TransactionIDTemplate, dummyTransactionID)
	return strings.ReplaceAll(value, ReferenceIDTemplate, dummyReferenceID)
}
