package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/sipico/animal-inventory/internal/console"
)

// login <user> [--password-file path]
func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", c.stderr)
	passwordFile := fs.String("password-file", "", "read the password from this file instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	username, err := oneArg(fs, "usuario")
	if err != nil {
		return err
	}

	password, err := readPassword(c.stdin, c.stderr, *passwordFile)
	if err != nil {
		return err
	}

	if err := console.Login(ctx, c.client, c.store, c.logger, username, password); err != nil {
		return authFailure(err)
	}

	fmt.Fprintf(c.stdout, "Sesión iniciada como %s\n", username)
	return nil
}

// register <user> [--password-file path]
func (c *cli) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", c.stderr)
	passwordFile := fs.String("password-file", "", "read the password from this file instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	username, err := oneArg(fs, "usuario")
	if err != nil {
		return err
	}

	password, err := readPassword(c.stdin, c.stderr, *passwordFile)
	if err != nil {
		return err
	}

	if err := console.Register(ctx, c.client, c.logger, username, password); err != nil {
		return authFailure(err)
	}

	fmt.Fprintln(c.stdout, console.MsgRegistered)
	return nil
}

// logout
func (c *cli) logout(ctx context.Context, args []string) error {
	if err := console.Logout(ctx, c.store); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Sesión cerrada")
	return nil
}

// status reports the stored session. An expired token is removed.
func (c *cli) status(ctx context.Context, args []string) error {
	sess, err := c.session(ctx)
	if err != nil {
		return err
	}

	subject := sess.Subject
	if subject == "" {
		subject = "(desconocido)"
	}
	fmt.Fprintf(c.stdout, "Usuario: %s\n", subject)
	if sess.ExpiresAt.IsZero() {
		fmt.Fprintln(c.stdout, "Expira: nunca")
	} else {
		fmt.Fprintf(c.stdout, "Expira: %s\n", sess.ExpiresAt.Local().Format(time.RFC3339))
	}
	if saved := c.savedAt(ctx); !saved.IsZero() {
		fmt.Fprintf(c.stdout, "Guardado: %s\n", saved.Local().Format(time.RFC3339))
	}
	return nil
}

// list [--json]
func (c *cli) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", c.stderr)
	asJSON := fs.Bool("json", false, "print the list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	con, err := c.openConsole(ctx)
	if err != nil {
		return err
	}
	if err := con.Refresh(ctx); err != nil {
		return &failure{msg: con.Error, err: err}
	}

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(con.Animals)
	}
	c.printAnimals(con.Animals)
	return nil
}

// draftFlags registers the four record fields on fs.
func draftFlags(fs *pflag.FlagSet) *console.Draft {
	var d console.Draft
	fs.StringVar(&d.Name, "name", "", "animal name")
	fs.StringVar(&d.Species, "species", "", "species")
	fs.StringVar(&d.Age, "age", "", "age in years")
	fs.StringVar(&d.Habitat, "habitat", "", "habitat")
	return &d
}

// add --name --species --age --habitat
func (c *cli) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", c.stderr)
	draft := draftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	con, err := c.openConsole(ctx)
	if err != nil {
		return err
	}

	con.OpenCreate()
	if err := con.Save(ctx, *draft); err != nil {
		return &failure{msg: con.Error, err: err}
	}

	fmt.Fprintln(c.stdout, "Animal guardado")
	c.printResynced(con)
	return nil
}

// update <id> [--name] [--species] [--age] [--habitat]
func (c *cli) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update", c.stderr)
	changes := draftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, "id")
	if err != nil {
		return err
	}

	con, err := c.openConsole(ctx)
	if err != nil {
		return err
	}
	if err := con.Refresh(ctx); err != nil {
		return &failure{msg: con.Error, err: err}
	}

	record, ok := con.Find(id)
	if !ok {
		return fmt.Errorf("no existe un animal con id %q", id)
	}
	con.OpenEdit(record)

	draft, _ := con.Draft()
	if fs.Changed("name") {
		draft.Name = changes.Name
	}
	if fs.Changed("species") {
		draft.Species = changes.Species
	}
	if fs.Changed("age") {
		draft.Age = changes.Age
	}
	if fs.Changed("habitat") {
		draft.Habitat = changes.Habitat
	}

	if err := con.Save(ctx, draft); err != nil {
		return &failure{msg: con.Error, err: err}
	}

	fmt.Fprintln(c.stdout, "Animal guardado")
	c.printResynced(con)
	return nil
}

// delete <id> [--yes]
func (c *cli) remove(ctx context.Context, args []string) error {
	fs := newFlagSet("delete", c.stderr)
	yes := fs.BoolP("yes", "y", false, "delete without asking for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneArg(fs, "id")
	if err != nil {
		return err
	}

	con, err := c.openConsole(ctx)
	if err != nil {
		return err
	}

	con.SelectDelete(id)
	if !*yes {
		ok, err := confirm(c.stdin, c.stderr, console.MsgConfirmDelete)
		if err != nil {
			return err
		}
		if !ok {
			con.CancelDelete()
			fmt.Fprintln(c.stdout, "Cancelado")
			return nil
		}
	}

	if err := con.ConfirmDelete(ctx); err != nil {
		return &failure{msg: con.Error, err: err}
	}

	fmt.Fprintln(c.stdout, "Animal eliminado")
	c.printResynced(con)
	return nil
}

// printResynced prints the list read back after a mutation, or the list
// error when that read failed.
func (c *cli) printResynced(con *console.Console) {
	if con.Error != "" {
		fmt.Fprintln(c.stderr, con.Error)
		return
	}
	c.printAnimals(con.Animals)
}

func oneArg(fs *pflag.FlagSet, name string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("se esperaba un argumento <%s>", name)
	}
	return fs.Arg(0), nil
}

// authFailure keeps only the localized message of a console.AuthError.
func authFailure(err error) error {
	var authErr *console.AuthError
	if errors.As(err, &authErr) {
		return &failure{msg: authErr.Message, err: authErr.Err}
	}
	return err
}
