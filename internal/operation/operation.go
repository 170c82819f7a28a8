// Package operation implements the tagged-message dispatch core (spec
// §4.2, §6): every envelope names one of the catalog's operations by a
// wire type string, and this package routes it to the matching
// command/query UseCase method. The JSON (de)serialization shell itself
// is out of scope (spec §1); this package deals in already-decoded
// payload bytes in and typed results out, the seam the HTTP adapter
// sits on top of.
package operation

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	entranslations "github.com/go-playground/validator/translations/en"
	"gopkg.in/go-playground/validator.v9"

	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/services/command"
	"github.com/openlearn/coredata/internal/services/query"
)

// validate and translator are built once, the same way the teacher's
// common/net/http/withBody.go's newValidator does it per-request — here
// hoisted to package init since the tag set never changes.
var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("en")

	validate = validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}

		return name
	})
}

// UseCase aggregates the command and query sides the registry dispatches
// into, mirroring the teacher's single top-level service wiring both
// halves together at bootstrap.
type UseCase struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// Handler decodes payload into its operation's input shape, invokes the
// matching UseCase method, and returns its result.
type Handler func(ctx context.Context, uc *UseCase, payload json.RawMessage) (any, error)

// registry is the exhaustive type→handler table (spec §9 Design Notes:
// "a table, not branches"). Built once at package init, grouped by
// domain across this package's uuid.go, entity.go, page.go, taxonomy.go,
// thread.go, user.go and misc.go.
var registry = map[string]Handler{}

// register adds h under name; called only from this package's init
// functions, so a duplicate name is a programming error worth panicking
// on immediately rather than letting the last writer win silently.
func register(name string, h Handler) {
	if _, exists := registry[name]; exists {
		panic("operation: duplicate registration for " + name)
	}

	registry[name] = h
}

// Dispatch routes one envelope to its operation (spec §4.2: "Dispatch is
// exhaustive: an unknown type fails to decode").
func Dispatch(ctx context.Context, uc *UseCase, opType string, payload json.RawMessage) (any, error) {
	h, ok := registry[opType]
	if !ok {
		return nil, apperr.BadRequest("unknown operation %q", opType)
	}

	return h(ctx, uc, payload)
}

// decode unmarshals payload into v and runs struct validation, surfacing
// both malformed input and failed `validate` tags as BadRequest — the
// caller could have sent a well-formed envelope (spec §7 policy:
// "validation... is BadRequest"). Mirrors the teacher's
// common/net/http/withBody.go's decode-then-ValidateStruct sequence.
func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return apperr.BadRequest("malformed payload: %s", err)
	}

	if err := validateStruct(v); err != nil {
		return err
	}

	return nil
}

// validateStruct runs the `validate` tags on v, if v is (a pointer to) a
// struct. Anonymous query-side payload structs carry no tags and pass
// through untouched; mutation Input structs tag their required
// identifiers (spec's per-operation invariants name which ids are
// mandatory).
func validateStruct(v any) error {
	k := reflect.ValueOf(v).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(v).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.BadRequest("invalid payload: %s", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+": "+fe.Translate(translator))
	}

	return apperr.BadRequest("%s", strings.Join(msgs, "; "))
}
