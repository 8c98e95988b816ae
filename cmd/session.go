package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"

	"nlquery/cli/internal/backend"
	"nlquery/cli/internal/controller"
	apperr "nlquery/cli/internal/errors"
	"nlquery/cli/internal/i18n"
	"nlquery/cli/internal/render/termview"
	"nlquery/cli/internal/terminal"
)

// newTerminalController wires a controller to a terminal view writing to w.
func newTerminalController(be backend.API, w io.Writer, tab string) (*controller.Controller, *termview.View, error) {
	view := termview.New(w)
	ctrl, err := controller.New(controller.Options{
		Backend:   be,
		View:      view,
		ActiveTab: tab,
		Examples:  cfg.Examples,
	})
	if err != nil {
		return nil, nil, err
	}
	return ctrl, view, nil
}

// loginPrompt logs in with the given credentials, prompting for the missing
// ones. Rejected or incomplete credentials are asked for again, up to
// attempts times; transport failures end the loop at once.
func loginPrompt(ctx context.Context, ctrl *controller.Controller, in *bufio.Reader, out io.Writer, user, pass string, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		if user == "" {
			if user, err = terminal.ReadLine(in, out, i18n.T("page.username")+": "); err != nil {
				return err
			}
		}
		if pass == "" {
			if pass, err = terminal.ReadPassword(in, out, i18n.T("page.password")+": "); err != nil {
				return err
			}
		}

		err = ctrl.Dispatch(ctx, controller.Event{Type: controller.EventLogin, Username: user, Password: pass})
		if err == nil {
			return nil
		}
		var se *backend.StatusError
		if !apperr.Is(err, apperr.MissingCredentials) && !errors.As(err, &se) {
			return errReported
		}
		user, pass = "", ""
	}
	return errReported
}
