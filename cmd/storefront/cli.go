package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/api"
	"github.com/vladislavdragonenkov/storefront/internal/app"
)

// cli хранит состояние одного запуска: флаги, конфигурацию и лениво открытые зависимости.
type cli struct {
	configPath string
	apiURL     string
	verbose    bool

	cfg  app.Config
	deps *app.Dependencies
}

func (c *cli) load() error {
	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ConfigureLogging()
	c.cfg = cfg
	return nil
}

// dependencies открывает хранилище и API-клиент при первом обращении.
func (c *cli) dependencies(cmd *cobra.Command) (*app.Dependencies, error) {
	if c.deps != nil {
		return c.deps, nil
	}
	errOut := cmd.ErrOrStderr()
	nav := api.NavigatorFunc(func() {
		_, _ = fmt.Fprintln(errOut, "session expired, run `storefront login` to sign in again")
	})
	deps, err := app.NewDependencies(cmd.Context(), c.cfg, nav, log.WithField("component", "cli"))
	if err != nil {
		return nil, err
	}
	c.deps = deps
	return deps, nil
}

func (c *cli) close() error {
	if c.deps == nil {
		return nil
	}
	err := c.deps.Close()
	c.deps = nil
	return err
}

// prompter читает ответы пользователя построчно.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// ask возвращает value, если оно задано, иначе спрашивает label.
func (p *prompter) ask(label, value string) string {
	if value != "" {
		return value
	}
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
