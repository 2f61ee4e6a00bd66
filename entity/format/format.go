package format

import "fmt"

type Format int8

const (
	YAML Format = iota
	JSON
	HTML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case HTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", int8(f))
	}
}

func UnmarshalText(text string) (Format, error) {
	switch text {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "html":
		return HTML, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}
