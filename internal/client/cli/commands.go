package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/eventportal/internal/client/client"
	"github.com/dmitrijs2005/eventportal/internal/client/models"
	"github.com/dmitrijs2005/eventportal/internal/common"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

const helpText = `Available commands:
  signup                        create an account
  verify                        confirm the emailed code
  login                         log in and remember the user
  whoami                        show the remembered user
  logout                        forget the remembered user
  events <community> [q]        list events, optionally filtered by name
  add-event                     create an event
  rename-event <id> <name...>   rename an event
  delete-event <id>             delete an event
  health                        check the server
  help, exit`

func (a *App) dispatch(ctx context.Context, parts []string) error {
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
		return nil
	case "signup", "register":
		return a.Signup(ctx)
	case "verify":
		return a.Verify(ctx)
	case "login":
		return a.Login(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "logout":
		return a.Logout(ctx)
	case "events", "list", "l":
		return a.Events(ctx, args)
	case "add-event":
		return a.AddEvent(ctx)
	case "rename-event":
		return a.RenameEvent(ctx, args)
	case "delete-event":
		return a.DeleteEvent(ctx, args)
	case "health":
		return a.Health(ctx)
	default:
		return usage("unknown command " + cmd + " (try help)")
	}
}

func (a *App) printError(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "Error: %s\n", apiErr.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "Error: server %s is unavailable\n", a.config.ServerURL)
	case errors.Is(err, errUsage):
		fmt.Fprintln(a.out, strings.TrimPrefix(err.Error(), "usage: "))
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.authService.Signup(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the 6-digit code from the email", a.out)
	if err != nil {
		return err
	}

	msg, err := a.authService.Verify(ctx, email, code)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if client.IsKind(err, "AccountNotVerified") {
			fmt.Fprintln(a.out, "Hint: run 'verify' with the code from your email first.")
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", p.UserName, p.Role)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	p, err := a.authService.WhoAmI(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\nemail:    %s\nusername: %s\nrole:     %s\nsince:    %s\n",
		p.ID, p.Email, p.UserName, p.Role, p.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Events(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("events <community> [q]")
	}
	community := args[0]
	q := strings.Join(args[1:], " ")

	list, err := a.eventService.List(ctx, community, q)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No events")
		return nil
	}
	printEvents(a.out, list)
	return nil
}

func printEvents(w io.Writer, list []*models.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAT\tLNG\tCREATED")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.5f\t%.5f\t%s\n",
			e.ID, e.Name, e.Lat(), e.Lng(), e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func (a *App) AddEvent(ctx context.Context) error {
	community, err := getSimpleText(a.reader, "Community", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Event name", a.out)
	if err != nil {
		return err
	}
	lat, err := getFloat(a.reader, "Latitude", a.out)
	if err != nil {
		return err
	}
	lng, err := getFloat(a.reader, "Longitude", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image file (empty for none)", a.out)
	if err != nil {
		return err
	}

	id, err := a.eventService.Create(ctx, &models.NewEvent{
		Community: community,
		Name:      name,
		Lat:       lat,
		Lng:       lng,
	}, image)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Event created: %s\n", id)
	return nil
}

func (a *App) RenameEvent(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("rename-event <id> <name...>")
	}
	if err := a.eventService.Rename(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Event updated")
	return nil
}

func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete-event <id>")
	}
	if err := a.eventService.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Event deleted")
	return nil
}

func (a *App) Health(ctx context.Context) error {
	if err := a.server.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}
