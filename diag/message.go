package diag

import "fmt"

// Source identifies which part of the stack produced a message
// (GL_DEBUG_SOURCE_*).
type Source uint32

const (
	SourceAPI            Source = 0x8246
	SourceWindowSystem   Source = 0x8247
	SourceShaderCompiler Source = 0x8248
	SourceThirdParty     Source = 0x8249
	SourceApplication    Source = 0x824A
	SourceOther          Source = 0x824B
)

// Type is the category of a message (GL_DEBUG_TYPE_*).
type Type uint32

const (
	TypeError              Type = 0x824C
	TypeDeprecatedBehavior Type = 0x824D
	TypeUndefinedBehavior  Type = 0x824E
	TypePortability        Type = 0x824F
	TypePerformance        Type = 0x8250
	TypeOther              Type = 0x8251
	TypeMarker             Type = 0x8268
	TypePushGroup          Type = 0x8269
	TypePopGroup           Type = 0x826A
)

// Severity is GL_DEBUG_SEVERITY_*.
type Severity uint32

const (
	SeverityHigh         Severity = 0x9146
	SeverityMedium       Severity = 0x9147
	SeverityLow          Severity = 0x9148
	SeverityNotification Severity = 0x826B
)

// String returns the short name of the source.
func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "API"
	case SourceWindowSystem:
		return "WindowSystem"
	case SourceShaderCompiler:
		return "ShaderCompiler"
	case SourceThirdParty:
		return "ThirdParty"
	case SourceApplication:
		return "Application"
	case SourceOther:
		return "Other"
	default:
		return fmt.Sprintf("Source(0x%X)", uint32(s))
	}
}

// String returns the short name of the type.
func (t Type) String() string {
	switch t {
	case TypeError:
		return "Error"
	case TypeDeprecatedBehavior:
		return "DeprecatedBehavior"
	case TypeUndefinedBehavior:
		return "UndefinedBehavior"
	case TypePortability:
		return "Portability"
	case TypePerformance:
		return "Performance"
	case TypeOther:
		return "Other"
	case TypeMarker:
		return "Marker"
	case TypePushGroup:
		return "PushGroup"
	case TypePopGroup:
		return "PopGroup"
	default:
		return fmt.Sprintf("Type(0x%X)", uint32(t))
	}
}

// String returns the short name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	case SeverityNotification:
		return "Notification"
	default:
		return fmt.Sprintf("Severity(0x%X)", uint32(s))
	}
}

// Message is one driver observation.
type Message struct {
	Source   Source
	Type     Type
	ID       uint32
	Severity Severity
	Text     string
}

// IsError reports whether m is an error-severity diagnostic: either its
// category is Error or the driver rated it High.
func (m Message) IsError() bool {
	return m.Type == TypeError || m.Severity == SeverityHigh
}

// String formats m on one line with its classification.
func (m Message) String() string {
	return fmt.Sprintf("[%s/%s/%s #%d] %s", m.Source, m.Type, m.Severity, m.ID, m.Text)
}
