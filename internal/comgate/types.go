package comgate

import (
	"net/url"
	"strconv"
)

// CreateRequest describes a payment to open on the gateway. Price is in
// minor currency units (haléře for CZK).
type CreateRequest struct {
	Price         int64
	Currency      string
	Label         string
	RefID         string
	Email         string
	FullName      string
	Method        string
	Category      string
	Delivery      string
	PrepareOnly   bool
	InitRecurring bool
	Test          bool

	// Optional payment expiration, e.g. "1h", "2d". Empty uses the
	// gateway default.
	ExpirationTime string

	// Callback URLs the gateway substitutes ${id}/${refId} into.
	URLPaid              string
	URLPaidRedirect      string
	URLCancelled         string
	URLCancelledRedirect string
	URLPending           string
	URLPendingRedirect   string
}

func (r *CreateRequest) formValues(merchant, secret string) map[string]string {
	form := map[string]string{
		"merchant":    merchant,
		"secret":      secret,
		"price":       strconv.FormatInt(r.Price, 10),
		"curr":        r.Currency,
		"label":       r.Label,
		"refId":       r.RefID,
		"email":       r.Email,
		"method":      r.Method,
		"prepareOnly": formatBool(r.PrepareOnly),
		"test":        formatBool(r.Test),
	}
	if r.FullName != "" {
		form["fullName"] = r.FullName
	}
	if r.Category != "" {
		form["category"] = r.Category
	}
	if r.Delivery != "" {
		form["delivery"] = r.Delivery
	}
	if r.InitRecurring {
		form["initRecurring"] = "true"
	}
	if r.ExpirationTime != "" {
		form["expirationTime"] = r.ExpirationTime
	}
	setIfNotEmpty(form, "url_paid", r.URLPaid)
	setIfNotEmpty(form, "url_paid_redirect", r.URLPaidRedirect)
	setIfNotEmpty(form, "url_cancelled", r.URLCancelled)
	setIfNotEmpty(form, "url_cancelled_redirect", r.URLCancelledRedirect)
	setIfNotEmpty(form, "url_pending", r.URLPending)
	setIfNotEmpty(form, "url_pending_redirect", r.URLPendingRedirect)
	return form
}

// CreateResponse is the parsed result of a create call.
type CreateResponse struct {
	Code     int
	Message  string
	TransID  string
	Redirect string
}

// StatusResponse is the parsed result of a status call.
type StatusResponse struct {
	Code    int
	Message string
	TransID string
	RefID   string
	Status  string
	Price   int64
	Curr    string
	Email   string
	Method  string
	VS      string
}

func parseCreateResponse(body []byte) (*CreateResponse, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(values.Get("code"))
	if err != nil {
		return nil, err
	}
	return &CreateResponse{
		Code:     code,
		Message:  values.Get("message"),
		TransID:  values.Get("transId"),
		Redirect: values.Get("redirect"),
	}, nil
}

func parseStatusResponse(body []byte) (*StatusResponse, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	code, err := strconv.Atoi(values.Get("code"))
	if err != nil {
		return nil, err
	}
	price, _ := strconv.ParseInt(values.Get("price"), 10, 64)
	return &StatusResponse{
		Code:    code,
		Message: values.Get("message"),
		TransID: values.Get("transId"),
		RefID:   values.Get("refId"),
		Status:  values.Get("status"),
		Price:   price,
		Curr:    values.Get("curr"),
		Email:   values.Get("email"),
		Method:  values.Get("method"),
		VS:      values.Get("vs"),
	}, nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func setIfNotEmpty(form map[string]string, key, value string) {
	if value != "" {
		form[key] = value
	}
}
