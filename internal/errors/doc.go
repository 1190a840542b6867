// Package errors provides structured, actionable errors for vdomkit.
//
// Errors carry a registered code, a category, an optional input location
// (with the surrounding lines), the path of the offending node inside a
// tree and a fix suggestion.
//
// # Error Categories
//
//   - snapshot: malformed snapshot input (E001-E019)
//   - store: snapshot persistence failures (E020-E039)
//   - config: configuration file problems (E040-E059)
//   - server: request and session errors (E060-E079)
//   - cli: command-line usage errors (E080-E099)
//
// # Usage
//
//	err := errors.New(errors.CodeTextAndChildren).
//	    WithLocation("steps/02.json", 7, 5).
//	    WithPath("div > ul[1]").
//	    WithSuggestion(`drop either "text" or "children"`)
//
//	errors.PrintError(err)
//	// ERROR E002: Node has both text and children
//	//
//	//   steps/02.json:7:5
//	//
//	//       5 │     {
//	//       6 │       "sel": "li",
//	//   →   7 │       "text": "x",
//	//         │     ^
//	//       8 │       "children": []
//	//       9 │     }
//	//
//	//   at div > ul[1]
//	//   ...
//
// Errors compare by code with the standard library's errors.Is:
//
//	if errors.HasCode(err, errors.CodeSessionNotFound) { ... }
package errors
