package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/api/middleware"
	cartsvc "github.com/adaezeodina/beautyhub-backend/internal/cart"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
)

type stubCartService struct {
	projection cartsvc.Projection
	err        error

	gotOwner    uuid.UUID
	gotProduct  uuid.UUID
	gotVendor   uuid.UUID
	gotItem     uuid.UUID
	gotQuantity int
	calls       []string
}

func (s *stubCartService) GetCart(_ context.Context, ownerID uuid.UUID) (cartsvc.Projection, error) {
	s.calls = append(s.calls, "get")
	s.gotOwner = ownerID
	return s.projection, s.err
}

func (s *stubCartService) AddItem(_ context.Context, ownerID, productID, vendorID uuid.UUID, quantity int) (cartsvc.Projection, error) {
	s.calls = append(s.calls, "add")
	s.gotOwner, s.gotProduct, s.gotVendor, s.gotQuantity = ownerID, productID, vendorID, quantity
	return s.projection, s.err
}

func (s *stubCartService) UpdateItemQuantity(_ context.Context, ownerID, itemID uuid.UUID, quantity int) (cartsvc.Projection, error) {
	s.calls = append(s.calls, "update")
	s.gotOwner, s.gotItem, s.gotQuantity = ownerID, itemID, quantity
	return s.projection, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, ownerID, itemID uuid.UUID) (cartsvc.Projection, error) {
	s.calls = append(s.calls, "remove")
	s.gotOwner, s.gotItem = ownerID, itemID
	return s.projection, s.err
}

func (s *stubCartService) ClearCart(_ context.Context, ownerID uuid.UUID) (cartsvc.Projection, error) {
	s.calls = append(s.calls, "clear")
	s.gotOwner = ownerID
	return s.projection, s.err
}

func cartTestRouter(svc cartsvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", CartFetch(svc, nil))
	r.Delete("/cart", CartClear(svc, nil))
	r.Post("/cart/items", CartAddItem(svc, nil))
	r.Put("/cart/items/{itemId}", CartUpdateItem(svc, nil))
	r.Delete("/cart/items/{itemId}", CartRemoveItem(svc, nil))
	return r
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestCartAddItemRoutesToService(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{projection: cartsvc.Projection{ItemCount: 2, TotalCents: 2000, Total: "20.00"}}

	body := `{"product_id":"` + productID.String() + `","quantity":2}`
	rec := httptest.NewRecorder()
	cartTestRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", body, ownerID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotOwner != ownerID || svc.gotProduct != productID || svc.gotQuantity != 2 {
		t.Fatalf("service received wrong arguments: %+v", svc)
	}

	var envelope struct {
		Data cartsvc.Projection `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Total != "20.00" {
		t.Fatalf("unexpected total %q", envelope.Data.Total)
	}
}

func TestCartAddItemAcceptsVendorID(t *testing.T) {
	ownerID := uuid.New()
	productID := uuid.New()
	vendorID := uuid.New()
	svc := &stubCartService{projection: cartsvc.Projection{ItemCount: 1, TotalCents: 1200, Total: "12.00"}}

	body := `{"product_id":"` + productID.String() + `","quantity":1,"vendor_id":"` + vendorID.String() + `"}`
	rec := httptest.NewRecorder()
	cartTestRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", body, ownerID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotVendor != vendorID {
		t.Fatalf("vendor not forwarded: got %s, want %s", svc.gotVendor, vendorID)
	}

	// Without vendor_id the check is skipped, not failed.
	rec = httptest.NewRecorder()
	body = `{"product_id":"` + productID.String() + `","quantity":1}`
	cartTestRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", body, ownerID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without vendor_id, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotVendor != uuid.Nil {
		t.Fatalf("expected nil vendor when omitted, got %s", svc.gotVendor)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc := &stubCartService{}
	router := cartTestRouter(svc)

	cases := []struct {
		name string
		body string
	}{
		{name: "zero quantity", body: `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{name: "missing product", body: `{"quantity":1}`},
		{name: "malformed product id", body: `{"product_id":"braiding-hair","quantity":1}`},
		{name: "malformed vendor id", body: `{"product_id":"` + uuid.NewString() + `","quantity":1,"vendor_id":"adaeze"}`},
		{name: "unknown field", body: `{"product_id":"` + uuid.NewString() + `","quantity":1,"color":"burgundy"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, "/cart/items", tc.body, uuid.New()))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if len(svc.calls) != 0 {
		t.Fatalf("service must not be reached on validation failures: %v", svc.calls)
	}
}

func TestCartUpdateItemPassesZeroQuantity(t *testing.T) {
	itemID := uuid.New()
	svc := &stubCartService{}

	rec := httptest.NewRecorder()
	cartTestRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/cart/items/"+itemID.String(), `{"quantity":0}`, uuid.New()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotItem != itemID || svc.gotQuantity != 0 {
		t.Fatalf("update not forwarded: item=%s quantity=%d", svc.gotItem, svc.gotQuantity)
	}
}

func TestCartErrorsMapToHTTPStatus(t *testing.T) {
	itemID := uuid.New()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "item not found", err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found"), wantStatus: http.StatusNotFound},
		{name: "insufficient stock", err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock"), wantStatus: http.StatusConflict},
		{name: "storage down", err: pkgerrors.New(pkgerrors.CodeDependency, "cart storage unavailable"), wantStatus: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCartService{err: tc.err}
			rec := httptest.NewRecorder()
			cartTestRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/cart/items/"+itemID.String(), `{"quantity":3}`, uuid.New()))
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCartRequiresIdentity(t *testing.T) {
	svc := &stubCartService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	cartTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
	if len(svc.calls) != 0 {
		t.Fatal("service must not run without identity")
	}
}

func TestCartClearAndFetch(t *testing.T) {
	ownerID := uuid.New()
	svc := &stubCartService{projection: cartsvc.Projection{Items: []cartsvc.ItemView{}, Vendors: []uuid.UUID{}, Total: "0.00"}}
	router := cartTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/cart", "", ownerID))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/cart", "", ownerID))
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}
	if got := svc.calls; len(got) != 2 || got[0] != "clear" || got[1] != "get" {
		t.Fatalf("unexpected call order %v", got)
	}
}
