package presenter

import (
	"io"

	"github.com/cpescan/cpescan/cpescan/match"
	"github.com/cpescan/cpescan/cpescan/presenter/json"
	"github.com/cpescan/cpescan/cpescan/presenter/table"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer, match.Matches) error
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(option Option) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter()
	case TablePresenter:
		return table.NewPresenter()
	default:
		return nil
	}
}
