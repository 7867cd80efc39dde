//go:build js && wasm

package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/goplus/gqlls/gql"
	"github.com/goplus/gqlls/gql/autocomplete"
)

// Gqlls answers completion requests for browser editors. Its schema comes
// from files supplied by the page.
type Gqlls struct {
	proj *gql.Project
}

// NewGqlls creates a new instance of [Gqlls] from an object mapping schema
// file names to {content: Uint8Array, version: number}.
func NewGqlls(this js.Value, args []js.Value) any {
	if len(args) != 1 {
		return errors.New("NewGqlls: expected 1 argument")
	}
	if args[0].Type() != js.TypeObject {
		return errors.New("NewGqlls: files argument must be an object")
	}
	g := &Gqlls{
		proj: gql.NewProject(ConvertJSFilesToMap(args[0]), gql.FeatAll),
	}
	return js.ValueOf(map[string]any{
		"updateFiles": JSFuncOfWithError(g.UpdateFiles),
		"complete":    JSFuncOfWithError(g.Complete),
	})
}

// UpdateFiles replaces the schema files. Files with an unchanged version
// keep their parsed form.
func (g *Gqlls) UpdateFiles(this js.Value, args []js.Value) any {
	if len(args) != 1 || args[0].Type() != js.TypeObject {
		return errors.New("Gqlls.UpdateFiles: expected a files object")
	}
	g.proj.UpdateFiles(ConvertJSFilesToMap(args[0]))
	return nil
}

// Complete returns the completions for (text, line, character).
func (g *Gqlls) Complete(this js.Value, args []js.Value) any {
	text, cur, err := completionArgs("Gqlls.Complete", args)
	if err != nil {
		return err
	}
	schema, err := g.proj.Schema()
	if err != nil {
		return fmt.Errorf("Gqlls.Complete: %w", err)
	}
	return suggestionsToJS(autocomplete.GetAutocompleteSuggestions(schema, text, cur))
}

// GqllsComplete returns the completions for (schemaSDL, text, line,
// character) without keeping any state.
func GqllsComplete(this js.Value, args []js.Value) any {
	if len(args) != 4 {
		return errors.New("gqllsComplete: expected 4 arguments")
	}
	if args[0].Type() != js.TypeString {
		return errors.New("gqllsComplete: schema argument must be a string")
	}
	schema, err := gql.LoadSchemaString("schema.graphql", args[0].String())
	if err != nil {
		return fmt.Errorf("gqllsComplete: %w", err)
	}
	text, cur, err := completionArgs("gqllsComplete", args[1:])
	if err != nil {
		return err
	}
	return suggestionsToJS(autocomplete.GetAutocompleteSuggestions(schema, text, cur))
}

func completionArgs(fn string, args []js.Value) (string, autocomplete.Cursor, error) {
	if len(args) != 3 {
		return "", autocomplete.Cursor{}, fmt.Errorf("%s: expected text, line and character", fn)
	}
	if args[0].Type() != js.TypeString {
		return "", autocomplete.Cursor{}, fmt.Errorf("%s: text argument must be a string", fn)
	}
	if args[1].Type() != js.TypeNumber || args[2].Type() != js.TypeNumber {
		return "", autocomplete.Cursor{}, fmt.Errorf("%s: line and character must be numbers", fn)
	}
	return args[0].String(), autocomplete.Cursor{Line: args[1].Int(), Character: args[2].Int()}, nil
}

func suggestionsToJS(suggestions []autocomplete.Suggestion) js.Value {
	items := make([]any, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, map[string]any{
			"label":             s.Label,
			"kind":              s.Kind.String(),
			"detail":            detailOf(s),
			"documentation":     s.Documentation,
			"isDeprecated":      s.IsDeprecated,
			"deprecationReason": s.DeprecationReason,
		})
	}
	return js.ValueOf(items)
}

func detailOf(s autocomplete.Suggestion) string {
	if s.Detail != "" {
		return s.Detail
	}
	if s.Type != nil && s.Kind != autocomplete.SuggestionType {
		return s.Type.String()
	}
	return ""
}

// JSFuncOfWithError returns a function to be used by JavaScript that can return
// an error.
func JSFuncOfWithError(fn func(this js.Value, args []js.Value) any) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		result := fn(this, args)
		if err, ok := result.(error); ok {
			return js.Global().Get("Error").New(err.Error())
		}
		return result
	})
}

// JSUint8ArrayToBytes converts a JavaScript Uint8Array to a []byte.
func JSUint8ArrayToBytes(uint8Array js.Value) []byte {
	b := make([]byte, uint8Array.Length())
	js.CopyBytesToGo(b, uint8Array)
	return b
}

// ConvertJSFilesToMap converts a JavaScript object of files to a map.
func ConvertJSFilesToMap(files js.Value) map[string]*gql.File {
	if files.Type() != js.TypeObject {
		return nil
	}
	keys := js.Global().Get("Object").Call("keys", files)
	result := make(map[string]*gql.File, keys.Length())
	for i := range keys.Length() {
		key := keys.Index(i).String()
		value := files.Get(key)
		if value.InstanceOf(js.Global().Get("Object")) {
			result[key] = &gql.File{
				Content: JSUint8ArrayToBytes(value.Get("content")),
				Version: value.Get("version").Int(),
			}
		}
	}
	return result
}

func main() {
	js.Global().Set("NewGqlls", JSFuncOfWithError(NewGqlls))
	js.Global().Set("gqllsComplete", JSFuncOfWithError(GqllsComplete))
	select {}
}
