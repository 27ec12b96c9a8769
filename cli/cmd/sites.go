package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ardnew/ngxconf/log"
	"github.com/ardnew/ngxconf/site"
)

// Sites manages the sites of an nginx installation.
type Sites struct {
	List    SitesList    `cmd:"" default:"withargs" help:"List sites and whether they are enabled."`
	Enable  SitesEnable  `cmd:""                    help:"Enable a site and reload nginx."`
	Disable SitesDisable `cmd:""                    help:"Disable a site and reload nginx."`
	Files   SitesFiles   `cmd:""                    help:"List nginx configuration files outside sites-available."`
}

// SiteFlags locate the nginx installation and the commands run against it.
type SiteFlags struct {
	Root     string   `default:"${root}"                help:"nginx configuration root."   short:"r"`
	Validate []string `default:"nginx,-t"               help:"Command that validates the configuration."`
	Reload   []string `default:"systemctl,reload,nginx" help:"Command that reloads nginx."`
}

func (f SiteFlags) manager(ctx context.Context) *site.Manager {
	opts := []site.Option{
		site.WithLogger(log.Default()),
		site.WithValidateCommand(f.Validate...),
		site.WithReloadCommand(f.Reload...),
	}

	return site.New(site.LayoutAt(f.Root), append(opts, siteOptionsFrom(ctx)...)...)
}

// SitesList lists sites.
type SitesList struct {
	SiteFlags `embed:""`

	Enabled  bool `help:"Only list enabled sites."  short:"e" xor:"state"`
	Disabled bool `help:"Only list disabled sites." short:"d" xor:"state"`
}

// Run executes the sites list command.
func (l *SitesList) Run(ctx context.Context) error {
	sites, err := l.manager(ctx).Sites(ctx)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Site", "Status"})

	n := 0

	for _, s := range sites {
		if (l.Enabled && !s.Enabled) || (l.Disabled && s.Enabled) {
			continue
		}

		tbl.AppendRow(table.Row{s.Name, s.Status()})
		n++
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", n)})

	return render(outputFrom(ctx), tbl)
}

// SitesEnable enables a site.
type SitesEnable struct {
	SiteFlags `embed:""`

	Name string `arg:"" help:"Site file name in sites-available."`
}

// Run executes the sites enable command.
func (e *SitesEnable) Run(ctx context.Context) error {
	return e.manager(ctx).Enable(ctx, e.Name)
}

// SitesDisable disables a site.
type SitesDisable struct {
	SiteFlags `embed:""`

	Name string `arg:"" help:"Site file name in sites-available."`
}

// Run executes the sites disable command.
func (d *SitesDisable) Run(ctx context.Context) error {
	return d.manager(ctx).Disable(ctx, d.Name)
}

// SitesFiles lists the configuration files under the nginx root.
type SitesFiles struct {
	SiteFlags `embed:""`
}

// Run executes the sites files command.
func (f *SitesFiles) Run(ctx context.Context) error {
	files, err := f.manager(ctx).ConfigFiles(ctx)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"File", "Path"})

	for _, file := range files {
		tbl.AppendRow(table.Row{file.Name, file.Path})
	}

	return render(outputFrom(ctx), tbl)
}

func render(w io.Writer, tbl table.Writer) error {
	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}
