package preset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"memepop/internal/domain"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var validate = newValidator()

// NewValidator returns a validator with the rules used by preset shapes
// registered: csscolor and utf8. Field names follow json tags.
func NewValidator() *validator.Validate {
	return newValidator()
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseColor(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})

	return v
}

// Validate checks p against the descriptor invariants and returns a
// *ValidationError naming every offending entry.
func Validate(p domain.Profile) error {
	verr := &ValidationError{Profile: p.Name}

	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate profile %s: %w", p.Name, err)
		}
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, FieldError{
				Field: trimRoot(fe.Namespace()),
				Rule:  ruleString(fe),
				Value: fe.Value(),
			})
		}
	}

	if p.Site.Overlay != nil {
		seen := make(map[string]int, len(p.Site.Overlay.Colors))
		for i, c := range p.Site.Overlay.Colors {
			key := NormalizeName(c.Name)
			if first, ok := seen[key]; ok {
				verr.Fields = append(verr.Fields, FieldError{
					Field: fmt.Sprintf("site.overlay.colors[%d].name", i),
					Rule:  fmt.Sprintf("unique (duplicates colors[%d])", first),
					Value: c.Name,
				})
				continue
			}
			seen[key] = i
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// NormalizeName folds a palette name to NFC so that composed and decomposed
// spellings of the same label compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleString(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
