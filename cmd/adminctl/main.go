// adminctl — терминальная консоль управления каталогом. Оператор
// проходит тот же трек состояний, что и админ-панель витрины:
// вход, дашборд со списком товаров, форма создания/редактирования.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/internal/infrastructure/storeapi"
	"github.com/robosite/storefront/internal/repository/credfile"
	"github.com/robosite/storefront/internal/workflow"
	"github.com/robosite/storefront/pkg/logger"
)

type console struct {
	machine *workflow.Machine
	in      *bufio.Scanner
	out     *os.File
}

// Confirm запрашивает y/n перед деструктивным действием.
func (c *console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	if !c.in.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *console) prompt(label, current string) string {
	if current != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(c.out, "%s: ", label)
	}

	if !c.in.Scan() {
		return current
	}

	text := strings.TrimSpace(c.in.Text())
	if text == "" {
		return current
	}

	return text
}

func main() {
	log := logger.NewSlogLogger()

	config, err := cfg.LoadAdminCtl(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	client := storeapi.NewClient(config.APIBaseURL, config.RequestTimeout, log)
	credStore := credfile.NewCredStore(config.CredPath, log)

	c := &console{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
	c.machine = workflow.NewMachine(client, credStore, c, log)

	ctx := context.Background()

	if err := c.machine.Rehydrate(ctx); err != nil {
		fmt.Fprintln(c.out, workflow.UserMessage(err))
	}
	if cred := c.machine.Credential(); cred != nil {
		fmt.Fprintf(c.out, "Hoş geldiniz %s!\n", cred.User.Name)
	}

	c.run(ctx)
}

func (c *console) run(ctx context.Context) {
	for {
		fmt.Fprintf(c.out, "\n[%s] > ", c.machine.State())
		if !c.in.Scan() {
			return
		}

		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}

		if err := c.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintln(c.out, workflow.UserMessage(err))
		}
	}
}

func (c *console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "login":
		return c.login(ctx)
	case "logout":
		return c.machine.Logout()
	case "list":
		if err := c.machine.Refresh(ctx); err != nil {
			return err
		}
		c.printProducts()
		return nil
	case "categories":
		c.printCategories()
		return nil
	case "create":
		if err := c.machine.StartCreate(); err != nil {
			return err
		}
		return c.editForm(ctx)
	case "edit":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: edit <product-id>")
			return nil
		}
		if err := c.machine.StartEdit(args[0]); err != nil {
			return err
		}
		return c.editForm(ctx)
	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: delete <product-id>")
			return nil
		}
		return c.machine.DeleteProduct(ctx, args[0])
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
		return nil
	}
}

func (c *console) login(ctx context.Context) error {
	email := c.prompt("email", "")
	password := c.prompt("password", "")

	if err := c.machine.SubmitCredentials(ctx, email, password); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Hoş geldiniz %s!\n", c.machine.Credential().User.Name)
	c.printProducts()

	return nil
}

// editForm заполняет форму товара поле за полем и отправляет ее.
// Ошибка приведения или сервера оставляет оператора в форме.
func (c *console) editForm(ctx context.Context) error {
	for {
		form := c.machine.Form()
		form.Name = c.prompt("name", form.Name)
		form.Description = c.prompt("description", form.Description)
		form.Category = c.prompt("category slug", form.Category)
		form.OriginalPrice = c.prompt("original price", form.OriginalPrice)
		form.CurrentPrice = c.prompt("current price", form.CurrentPrice)
		form.Rating = c.prompt("rating 1-5", form.Rating)
		form.Badge = c.prompt("badge (empty for none)", form.Badge)
		form.InStock = strings.EqualFold(c.prompt("in stock y/n", "y"), "y")

		err := c.machine.Submit(ctx)
		if err == nil {
			fmt.Fprintln(c.out, "saved")
			c.printProducts()
			return nil
		}

		fmt.Fprintln(c.out, workflow.UserMessage(err))
		if !c.Confirm("Retry editing?") {
			return c.machine.Cancel()
		}
	}
}

func (c *console) printProducts() {
	for _, p := range c.machine.Products() {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		fmt.Fprintf(c.out, "%s  %-30s  %8.2f  %s  %s\n",
			p.ID, p.Name, p.CurrentPrice, p.Category, stock)
	}
}

func (c *console) printCategories() {
	for _, cat := range c.machine.Categories() {
		fmt.Fprintf(c.out, "%-20s  %s\n", cat.Slug, cat.Name)
	}
}

func (c *console) printHelp() {
	fmt.Fprintln(c.out, `commands:
  login               sign in as administrator
  list                refresh and print the catalog
  categories          print known categories
  create              create a new product
  edit <id>           edit an existing product
  delete <id>         delete a product (asks for confirmation)
  logout              sign out and forget the stored credential
  quit                leave the console`)
}
