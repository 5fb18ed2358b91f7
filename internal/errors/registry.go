package errors

import "sort"

// ErrorTemplate defines a registered error code.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Binding (E001-E009)
	"E001": {
		Category: CategoryBinding,
		Message:  "Observer callback failed",
		Detail:   "A projection, extraction or listener callback returned an error or panicked. The update pass that ran it was stopped; the cell keeps the value that was stored before the failure.",
	},
	"E002": {
		Category: CategoryBinding,
		Message:  "Re-entrant update limit exceeded",
		Detail:   "Setting a cell triggered observers that set cells again, deeper than the configured binding.max_depth. This usually means two bindings keep writing each other.",
	},
	"E003": {
		Category: CategoryBinding,
		Message:  "Value cannot be converted to the cell's type",
		Detail:   "Text read from an element could not be parsed into the type the cell holds.",
	},

	// Component (E010-E019)
	"E010": {
		Category: CategoryComponent,
		Message:  "Component already has a parent",
		Detail:   "A component can be attached under a parent element only once. The second attachment was ignored.",
	},
	"E011": {
		Category: CategoryComponent,
		Message:  "Component tag cannot change",
		Detail:   "A component was updated with a descriptor whose tag differs from the element it owns. Create a new component instead.",
	},
	"E012": {
		Category: CategoryComponent,
		Message:  "Unsupported component content",
		Detail:   "Content must be a template string, a list of child descriptors, a children function or nil.",
	},

	// Config (E020-E029)
	"E020": {
		Category: CategoryConfig,
		Message:  "Config file not readable",
		Detail:   "The configuration file does not exist or cannot be opened.",
	},
	"E021": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		Detail:   "The configuration file is not valid for its format.",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration parsed but one or more values are out of range.",
	},
	"E023": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Configuration files must end in .json, .toml, .yaml or .yml.",
	},

	// Publish (E030-E039)
	"E030": {
		Category: CategoryPublish,
		Message:  "Publishing the snapshot failed",
		Detail:   "The rendered page could not be uploaded to the object store.",
	},
	"E031": {
		Category: CategoryPublish,
		Message:  "Publish target not configured",
		Detail:   "A bucket and key are required, either in the config file or as flags.",
	},

	// Protocol (E040-E049)
	"E040": {
		Category: CategoryProtocol,
		Message:  "Invalid client message",
		Detail:   "A live session message could not be decoded.",
	},
	"E041": {
		Category: CategoryProtocol,
		Message:  "Unknown element",
		Detail:   "A client message referred to an element id the session does not know. The page may be stale; reload it.",
	},

	// CLI (E050-E059)
	"E050": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"E051": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
		Detail:   "The rendered page could not be written to the output file.",
	},
}

// GetAllCodes returns all registered codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces a template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
