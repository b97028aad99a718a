package presenter

import "strings"

const (
	UnknownPresenter Option = iota
	JSONPresenter
	TablePresenter
)

var optionStr = []string{
	"UnknownPresenter",
	"json",
	"table",
}

var Options = []Option{
	JSONPresenter,
	TablePresenter,
}

type Option int

// ParseOption returns the presenter option for a CLI string, defaulting to
// table for an empty value.
func ParseOption(userStr string) Option {
	switch strings.ToLower(userStr) {
	case "json":
		return JSONPresenter
	case "table", "":
		return TablePresenter
	default:
		return UnknownPresenter
	}
}

func (o Option) String() string {
	if int(o) >= len(optionStr) || o < 0 {
		return optionStr[0]
	}

	return optionStr[o]
}
