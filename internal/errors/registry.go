package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// Registered codes.
const (
	CodeInvalidSnapshot  = "E001"
	CodeTextAndChildren  = "E002"
	CodeTextNodeFields   = "E003"
	CodeCommentFields    = "E004"
	CodeStoreUnavailable = "E020"
	CodeStoreWrite       = "E021"
	CodeStoreRead        = "E022"
	CodeConfigNotFound   = "E040"
	CodeInvalidConfig    = "E041"
	CodeUnknownBackend   = "E042"
	CodeSessionNotFound  = "E060"
	CodeInvalidRequest   = "E061"
	CodeWebSocketUpgrade = "E062"
	CodeNoInput          = "E080"
	CodeInputUnreadable  = "E081"
)

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Snapshot Errors (E001-E019)
	// ============================================

	CodeInvalidSnapshot: {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot",
		Detail:   "The snapshot is not a valid JSON tree. Each node is an object with optional sel, key, text, children, ns, attrs and class fields.",
	},
	CodeTextAndChildren: {
		Category: CategorySnapshot,
		Message:  "Node has both text and children",
		Detail:   "A node carries either a text payload or a children list, never both.",
	},
	CodeTextNodeFields: {
		Category: CategorySnapshot,
		Message:  "Text node has element fields",
		Detail:   "A node without a selector is a text node; it cannot have children, attributes or classes.",
	},
	CodeCommentFields: {
		Category: CategorySnapshot,
		Message:  "Comment node has element fields",
		Detail:   "A node with selector \"!\" is a comment; only its text and key are used.",
	},

	// ============================================
	// Store Errors (E020-E039)
	// ============================================

	CodeStoreUnavailable: {
		Category: CategoryStore,
		Message:  "Snapshot store unavailable",
		Detail:   "The configured snapshot store could not be opened.",
	},
	CodeStoreWrite: {
		Category: CategoryStore,
		Message:  "Snapshot write failed",
		Detail:   "The snapshot could not be saved to the store.",
	},
	CodeStoreRead: {
		Category: CategoryStore,
		Message:  "Snapshot read failed",
		Detail:   "The snapshot could not be loaded from the store.",
	},

	// ============================================
	// Config Errors (E040-E059)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file given on the command line does not exist.",
	},
	CodeInvalidConfig: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file contains invalid YAML or invalid values.",
	},
	CodeUnknownBackend: {
		Category: CategoryConfig,
		Message:  "Unknown store backend",
		Detail:   "store.backend must be one of memory, bolt or s3.",
	},

	// ============================================
	// Server Errors (E060-E079)
	// ============================================

	CodeSessionNotFound: {
		Category: CategoryServer,
		Message:  "Session not found",
		Detail:   "No live session or stored snapshot exists for this ID.",
	},
	CodeInvalidRequest: {
		Category: CategoryServer,
		Message:  "Invalid patch request",
		Detail:   "The request body must be a snapshot tree.",
	},
	CodeWebSocketUpgrade: {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
		Detail:   "The connection could not be upgraded to a WebSocket.",
	},

	// ============================================
	// CLI Errors (E080-E099)
	// ============================================

	CodeNoInput: {
		Category: CategoryCLI,
		Message:  "No input files",
		Detail:   "Pass one or more snapshot files to apply in order.",
	},
	CodeInputUnreadable: {
		Category: CategoryCLI,
		Message:  "Input file unreadable",
		Detail:   "The snapshot file could not be read.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry. It is meant for
// package initialization; the registry is not guarded for concurrent writes.
func Register(code string, template Template) {
	registry[code] = template
}
