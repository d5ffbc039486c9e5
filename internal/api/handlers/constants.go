package handlers

const (
	serviceName    = "synesthesia-simulator"
	apiVersion     = "1.0.0"
	midiFilename   = "synesthesia.mid"
	midiMIMEType   = "audio/midi"
	defaultColor   = "#000000"
	maxContentSize = 10000 // runes accepted by text-producing endpoints

	// Error codes returned in the "error" field
	codeInvalidRequest      = "InvalidRequest"
	codeInvalidColorFormat  = "InvalidColorFormat"
	codeInvalidNumericInput = "InvalidNumericInput"
	codeUnrecognizedContent = "UnrecognizedContent"
	codeInvalidPreference   = "InvalidPreference"
	codeContentTooLong      = "ContentTooLong"
	codeInternal            = "InternalError"
)
