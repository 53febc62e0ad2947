package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/careerpath/frontend/apps/web"
	"github.com/careerpath/frontend/core/catalog"
	"github.com/careerpath/frontend/core/session"
)

var (
	readPasswordFunc           = term.ReadPassword // mockable
	confirmInput     io.Reader = os.Stdin          // mockable

	errHelp = errors.New("help provided")
)

type authService interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
}

// entityOps erases the per-entity generics behind plain funcs so the CLI can
// dispatch on an -entity flag. Every command drives a web.ListView, the same
// controller the admin pages run on.
type entityOps struct {
	list   func(ctx context.Context, qf catalog.QueryFilter) (visible []catalog.Meta, total int, err error)
	toggle func(ctx context.Context, id, field string) (value bool, err error)
	del    func(ctx context.Context, id string, confirm web.ConfirmFunc) (deleted bool, err error)
}

func ops[T any, PT catalog.RowPtr[T]](res web.ListResource[T]) entityOps {
	return entityOps{
		list: func(ctx context.Context, qf catalog.QueryFilter) ([]catalog.Meta, int, error) {
			lv := web.NewListView[T, PT](res, web.ListViewOptions{})
			if err := lv.Refresh(ctx); err != nil {
				return nil, 0, err
			}
			lv.SetFilter(qf)
			visible := lv.Visible()
			metas := make([]catalog.Meta, len(visible))
			for i := range visible {
				metas[i] = *PT(&visible[i]).RowMeta()
			}
			return metas, len(lv.Rows()), nil
		},
		toggle: func(ctx context.Context, id, field string) (bool, error) {
			lv := web.NewListView[T, PT](res, web.ListViewOptions{})
			if err := lv.Refresh(ctx); err != nil {
				return false, err
			}
			if err := lv.Toggle(ctx, id, field); err != nil {
				return false, err
			}
			m, _ := catalog.MetaByID[T, PT](lv.Rows(), id)
			value, _ := m.Flag(field)
			return value, nil
		},
		del: func(ctx context.Context, id string, confirm web.ConfirmFunc) (bool, error) {
			lv := web.NewListView[T, PT](res, web.ListViewOptions{Confirm: confirm})
			if err := lv.Refresh(ctx); err != nil {
				return false, err
			}
			before := len(lv.Rows())
			if err := lv.Delete(ctx, id); err != nil {
				return false, err
			}
			return len(lv.Rows()) < before, nil
		},
	}
}

type commandLine struct {
	sess     *session.Store
	auth     authService
	entities map[string]entityOps
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL - sign in; the password will be prompted next")
	fmt.Fprintln(cli.out, "  list -entity ENTITY [-search TEXT] [-category CAT] [-status STATUS] - list records")
	fmt.Fprintln(cli.out, "  toggle -entity ENTITY -id ID -field FIELD - flip a boolean flag (isActive, isFeatured, isFree)")
	fmt.Fprintln(cli.out, "  delete -entity ENTITY -id ID - delete a record")
	fmt.Fprintf(cli.out, "entities: %s\n", strings.Join(cli.entityNames(), ", "))
}

func (cli *commandLine) entityNames() []string {
	names := make([]string, 0, len(cli.entities))
	for name := range cli.entities {
		names = append(names, name)
	}
	return names
}

func (cli *commandLine) entity(name string) (entityOps, error) {
	e, ok := cli.entities[name]
	if !ok {
		return entityOps{}, fmt.Errorf("unknown entity %q (have: %s)", name, strings.Join(cli.entityNames(), ", "))
	}
	return e, nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The admin's email. The password will be prompted next.")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listEntity := listCmd.String("entity", "", "The entity to list, eg courses.")
	listSearch := listCmd.String("search", "", "Substring match on title, description and author.")
	listCategory := listCmd.String("category", "", "Exact category match.")
	listStatus := listCmd.String("status", "", "One of: active, inactive, featured, free, paid.")

	toggleCmd := flag.NewFlagSet("toggle", flag.ExitOnError)
	toggleEntity := toggleCmd.String("entity", "", "The entity the record belongs to.")
	toggleID := toggleCmd.String("id", "", "The record's id.")
	toggleField := toggleCmd.String("field", "", "The flag to flip: isActive, isFeatured or isFree.")

	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	deleteEntity := deleteCmd.String("entity", "", "The entity the record belongs to.")
	deleteID := deleteCmd.String("id", "", "The record's id.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *listEntity == "" {
			listCmd.Usage()
			return errHelp
		}
		return cli.list(*listEntity, *listSearch, *listCategory, *listStatus)
	case "toggle":
		if err := toggleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *toggleEntity == "" || *toggleID == "" || *toggleField == "" {
			toggleCmd.Usage()
			return errHelp
		}
		return cli.toggle(*toggleEntity, *toggleID, *toggleField)
	case "delete":
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteEntity == "" || *deleteID == "" {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.delete(*deleteEntity, *deleteID)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(email, pwd string) error {
	s, err := cli.auth.Login(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	cli.sess.Set(s)
	fmt.Fprintf(cli.out, "Signed in as %s (%s)\n", s.User.Name, s.User.Role)
	fmt.Fprintf(cli.out, "Token: %s\n", s.Token)
	return nil
}

func (cli *commandLine) list(entity, search, category, status string) error {
	e, err := cli.entity(entity)
	if err != nil {
		return err
	}
	qf := catalog.QueryFilter{Search: search, Category: category, Status: catalog.Status(status)}
	metas, total, err := e.list(context.Background(), qf)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tACTIVE\tFEATURED")
	for i := range metas {
		m := &metas[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%t\t%t\n", m.ID, m.Title, m.Category, m.Price, m.IsActive, m.IsFeatured)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d of %d\n", len(metas), total)
	return nil
}

func (cli *commandLine) toggle(entity, id, field string) error {
	e, err := cli.entity(entity)
	if err != nil {
		return err
	}
	value, err := e.toggle(context.Background(), id, field)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s %s: %s is now %t\n", entity, id, field, value)
	return nil
}

func (cli *commandLine) delete(entity, id string) error {
	e, err := cli.entity(entity)
	if err != nil {
		return err
	}
	confirm := func(msg string) bool {
		fmt.Fprintf(cli.out, "%s [y/N]: ", msg)
		answer, _ := bufio.NewReader(confirmInput).ReadString('\n')
		a := strings.ToLower(strings.TrimSpace(answer))
		return a == "y" || a == "yes"
	}
	deleted, err := e.del(context.Background(), id, confirm)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(cli.out, "aborted")
		return nil
	}
	fmt.Fprintf(cli.out, "deleted %s %s\n", entity, id)
	return nil
}
