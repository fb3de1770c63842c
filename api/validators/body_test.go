package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/types"
)

type patchBody struct {
	Name  types.OptionalString `json:"name" validate:"omitempty,max=5"`
	Phone types.OptionalString `json:"phone" validate:"omitempty,max=10"`
}

func decodePatch(t *testing.T, body string) (patchBody, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	var dest patchBody
	err := DecodeJSONBody(req, &dest)
	return dest, err
}

func TestDecodeJSONBodyValidatesOptionalStrings(t *testing.T) {
	_, err := decodePatch(t, `{"name": "too long for the cap"}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodySkipsAbsentAndNullOptionals(t *testing.T) {
	got, err := decodePatch(t, `{"name": null}`)
	if err != nil {
		t.Fatalf("null field should pass validation: %v", err)
	}
	if !got.Name.Set || got.Name.Value != nil {
		t.Fatalf("null field not decoded: %+v", got.Name)
	}
	if got.Phone.Set {
		t.Fatalf("absent field should stay unset: %+v", got.Phone)
	}
}

func TestDecodeJSONBodyAcceptsValuesUnderCap(t *testing.T) {
	got, err := decodePatch(t, `{"name": "Ruby", "phone": "98765"}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name.Value == nil || *got.Name.Value != "Ruby" {
		t.Fatalf("name not decoded: %+v", got.Name)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decodePatch(t, `{"nickname": "Ruby"}`)
	if err == nil {
		t.Fatal("expected decode error for unknown field")
	}
}
