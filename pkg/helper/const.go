package helper

const (
	// TimeFormatLogger const
	TimeFormatLogger = "2006/01/02 15:04:05"

	// V1 const
	V1 = "/v1"

	// HeaderAuthorization const
	HeaderAuthorization = "Authorization"
	// HeaderContentType const
	HeaderContentType = "Content-Type"
	// HeaderMIMEApplicationJSON const
	HeaderMIMEApplicationJSON = "application/json"

	// WORKDIR const for workdir environment
	WORKDIR = "WORKDIR"

	// Byte size unit
	Byte uint64 = 1
	// KByte size unit
	KByte = Byte * 1024
	// MByte size unit
	MByte = KByte * 1024
)
