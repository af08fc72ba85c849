package validate_test

import (
	"testing"

	"github.com/brookxc/menuadmin/pkg/validate"
)

type restaurantInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Location    string `json:"location"    validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"nullable,max=2000"`
	ThemeColor  string `json:"themeColor"  validate:"nullable,hex_color"`
	Logo        string `json:"logo"        validate:"nullable,data_uri"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(restaurantInput{
		Name:       "Cafe X",
		Location:   "123 Main St, Addis",
		ThemeColor: "#3B82F6",
		Logo:       "data:image/png;base64,iVBORw0KGgo=",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(restaurantInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["location"]; !ok {
		t.Error("expected location to be required")
	}
	// Nullable fields stay silent when empty.
	if _, ok := errs["themeColor"]; ok {
		t.Error("themeColor should be nullable")
	}
}

func TestHexColorRule(t *testing.T) {
	for _, ok := range []string{"#abc", "#ABC", "#3B82F6", "#ffffff"} {
		errs := validate.Struct(restaurantInput{Name: "A B", Location: "C D", ThemeColor: ok})
		if _, bad := errs["themeColor"]; bad {
			t.Errorf("%q should be a valid theme color", ok)
		}
	}
	for _, bad := range []string{"3B82F6", "#12", "#12345", "#gggggg", "blue"} {
		errs := validate.Struct(restaurantInput{Name: "A B", Location: "C D", ThemeColor: bad})
		if _, got := errs["themeColor"]; !got {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestMinLength(t *testing.T) {
	errs := validate.Struct(restaurantInput{Name: "X", Location: "Somewhere"})
	if _, ok := errs["name"]; !ok {
		t.Error("single-character name should fail min=2")
	}
}

func TestBooleanRule(t *testing.T) {
	type in struct {
		Locked string `json:"locked" validate:"required,boolean"`
	}
	if errs := validate.Struct(in{Locked: "yes"}); !validate.HasErrors(errs) {
		t.Error(`"yes" should not satisfy the boolean rule`)
	}
	if errs := validate.Struct(in{Locked: "true"}); validate.HasErrors(errs) {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestDataURIRule(t *testing.T) {
	errs := validate.Struct(restaurantInput{Name: "A B", Location: "C D", Logo: "http://example.com/logo.png"})
	if _, ok := errs["logo"]; !ok {
		t.Error("external URLs should be rejected for logo")
	}
}
