package comgate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestCreateParsesResponse(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if got := r.PostForm.Get("merchant"); got != "merchant123" {
			t.Errorf("merchant = %q", got)
		}
		if got := r.PostForm.Get("secret"); got != "s3cret" {
			t.Errorf("secret = %q", got)
		}
		if got := r.PostForm.Get("price"); got != "5025" {
			t.Errorf("price = %q", got)
		}
		if got := r.PostForm.Get("curr"); got != "CZK" {
			t.Errorf("curr = %q", got)
		}
		if got := r.PostForm.Get("prepareOnly"); got != "true" {
			t.Errorf("prepareOnly = %q", got)
		}
		w.Write([]byte("code=0&message=OK&transId=AB12-CD34-EF56&redirect=https%3A%2F%2Fpayments.comgate.cz%2Fclient%2Finstructions%2Findex%3Fid%3DAB12-CD34-EF56"))
	})

	client := NewClient("merchant123", "s3cret").WithBaseURL(server.URL)
	resp, err := client.Create(context.Background(), &CreateRequest{
		Price:       5025,
		Currency:    CurrencyCZK,
		Label:       "Poplatek",
		RefID:       "12345/555",
		Email:       "jan@example.com",
		Method:      MethodAll,
		PrepareOnly: true,
		Test:        true,
	})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if resp.Code != CodeOK {
		t.Errorf("code = %d", resp.Code)
	}
	if resp.TransID != "AB12-CD34-EF56" {
		t.Errorf("transId = %q", resp.TransID)
	}
	if resp.Redirect != "https://payments.comgate.cz/client/instructions/index?id=AB12-CD34-EF56" {
		t.Errorf("redirect = %q", resp.Redirect)
	}
}

func TestCreateNonOKCodeIsReturnedToCaller(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("code=1301&message=unknown+e-shop"))
	})

	client := NewClient("merchant123", "s3cret").WithBaseURL(server.URL)
	resp, err := client.Create(context.Background(), &CreateRequest{Price: 100, Currency: CurrencyCZK})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	// The facade decides what a non-OK create means; the client just
	// reports it.
	if resp.Code != 1301 {
		t.Errorf("code = %d", resp.Code)
	}
	if resp.Message != "unknown e-shop" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestStatusParsesResponse(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if got := r.PostForm.Get("transId"); got != "AB12-CD34-EF56" {
			t.Errorf("transId = %q", got)
		}
		w.Write([]byte("code=0&message=OK&transId=AB12-CD34-EF56&status=PAID&price=5025&curr=CZK&refId=12345%2F555&method=BANK_CZ_CS&vs=998877&email=jan%40example.com"))
	})

	client := NewClient("merchant123", "s3cret").WithBaseURL(server.URL)
	resp, err := client.Status(context.Background(), "AB12-CD34-EF56")
	if err != nil {
		t.Fatalf("Status err: %v", err)
	}
	if resp.Status != StatusPaid {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.RefID != "12345/555" {
		t.Errorf("refId = %q", resp.RefID)
	}
	if resp.Price != 5025 {
		t.Errorf("price = %d", resp.Price)
	}
	if resp.VS != "998877" {
		t.Errorf("vs = %q", resp.VS)
	}
}

func TestStatusPaymentNotFound(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("code=1400&message=Payment+not+found"))
	})

	client := NewClient("merchant123", "s3cret").WithBaseURL(server.URL)
	_, err := client.Status(context.Background(), "missing")
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestStatusOtherErrorCode(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("code=1200&message=database+error"))
	})

	client := NewClient("merchant123", "s3cret").WithBaseURL(server.URL)
	_, err := client.Status(context.Background(), "T1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 1200 {
		t.Errorf("code = %d", apiErr.Code)
	}
}
