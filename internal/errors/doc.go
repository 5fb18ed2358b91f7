// Package errors provides coded, actionable errors for the euonymus CLI and
// server.
//
// Library packages (binding, component, dom) return plain wrapped errors
// built on their own sentinels. At the edges of the program those errors
// are converted with FromError into an *Error carrying a stable code, a
// category, a longer explanation and, where one applies, a hint:
//
//	err := errors.FromError(cfgErr, "E022").
//	    WithSuggestion("server.port must be between 1 and 65535")
//	errors.PrintError(err)
//	// ERROR E022: Invalid configuration
//	//
//	//   euonymus.toml:4
//	//
//	//       3 │ [server]
//	//   →   4 │ port = 0
//	//       5 │
//	//
//	//   Hint: server.port must be between 1 and 65535
//
// Codes are grouped by category: binding (E001-E009), component
// (E010-E019), config (E020-E029), publish (E030-E039), protocol
// (E040-E049) and cli (E050-E059).
package errors
