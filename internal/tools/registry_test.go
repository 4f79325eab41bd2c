package tools

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAdd(t *testing.T) {
	r := NewRegistry(nil)
	r.newID = func() string { return "t1" }

	got, err := r.Add(KindNotion, "secret_abc")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := Tool{ID: "t1", Name: "Notion", Kind: KindNotion, Credential: "secret_abc", Status: StatusConnected}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tool mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Tool{want}, r.List()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_Validation(t *testing.T) {
	r := NewRegistry(nil)

	if _, err := r.Add("fax", "x"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownKind", err)
	}
	if _, err := r.Add("", "x"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("empty kind error = %v, want ErrUnknownKind", err)
	}
	if _, err := r.Add(KindSlack, "  "); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("blank credential error = %v, want ErrMissingCredential", err)
	}
	if len(r.List()) != 0 {
		t.Error("rejected tools were stored")
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry(nil)
	r.SeedDefaults()

	r.Remove("1")
	r.Remove("1")
	r.Remove("missing")

	got := r.List()
	if len(got) != 1 || got[0].Kind != KindCalendar {
		t.Errorf("after remove: %+v", got)
	}
}

func TestPlaceholder(t *testing.T) {
	tests := map[Kind]string{
		KindGmail:    "Enter your Gmail address",
		KindDatabase: "Enter your database connection string",
		KindCustom:   "Enter your API endpoint",
		"":           DefaultPlaceholder,
		"fax":        DefaultPlaceholder,
	}
	for k, want := range tests {
		if got := Placeholder(k); got != want {
			t.Errorf("Placeholder(%q) = %q, want %q", k, got, want)
		}
	}
}

func TestCatalog_IsCopy(t *testing.T) {
	c := Catalog()
	if len(c) != 6 {
		t.Fatalf("catalog has %d entries, want 6", len(c))
	}
	c[0].Label = "changed"
	if Catalog()[0].Label != "Gmail" {
		t.Error("Catalog exposed its backing array")
	}
}
