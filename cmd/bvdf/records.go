package main

import (
	"fmt"

	"github.com/carbyne/bvdf/catalog"
	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/ir"

	"github.com/scott-cotton/cli"
)

func fileArg(args []string, configured, what string) (string, error) {
	switch len(args) {
	case 0:
		if configured == "" {
			return "", fmt.Errorf("%w: no %s file given and none configured", cli.ErrUsage, what)
		}
		return configured, nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected at most one %s file", cli.ErrUsage, what)
	}
}

func apps(cfg *AppsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apps.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, cfg.Config.Paths.AppInfo, "app-info")
	if err != nil {
		return err
	}
	a, err := datafile.LoadAppInfo(path, cfg.dataOpts()...)
	if err != nil {
		return err
	}
	list, err := catalog.Filter(catalog.Apps(a), cfg.Where)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var rows []*ir.Token
	if cfg.States {
		for _, s := range catalog.ReleaseStates(list) {
			rows = append(rows, ir.FromString(s))
		}
	} else {
		for _, app := range list {
			rows = append(rows, ir.FromCollection(appRow(app, cfg.Full)))
		}
	}
	return encode.Encode(ir.FromSlice(rows...), cc.Out, cfg.encOpts(cc.Out)...)
}

func appRow(a *catalog.App, full bool) *ir.Collection {
	if full {
		return a.Tree()
	}
	return ir.FromProperties(
		ir.Property{Key: "appid", Value: ir.FromUint64(uint64(a.AppID))},
		ir.Property{Key: "name", Value: ir.FromString(a.Name)},
		ir.Property{Key: "type", Value: ir.FromString(a.Type)},
		ir.Property{Key: "releasestate", Value: ir.FromString(a.ReleaseState)},
		ir.Property{Key: "oslist", Value: ir.FromString(a.OSList)},
		ir.Property{Key: "developer", Value: ir.FromString(a.Developer)},
		ir.Property{Key: "publisher", Value: ir.FromString(a.Publisher)},
	)
}

func packages(cfg *PackagesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Packages.Parse(cc, args)
	if err != nil {
		return err
	}
	path, err := fileArg(args, cfg.Config.Paths.PackageInfo, "package-info")
	if err != nil {
		return err
	}
	p, err := datafile.LoadPackageInfo(path, cfg.dataOpts()...)
	if err != nil {
		return err
	}
	list, err := catalog.Filter(catalog.Packages(p), cfg.Where)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	rows := make([]*ir.Token, len(list))
	for i, pkg := range list {
		rows[i] = ir.FromCollection(packageRow(pkg, cfg.Full))
	}
	return encode.Encode(ir.FromSlice(rows...), cc.Out, cfg.encOpts(cc.Out)...)
}

func packageRow(p *catalog.Package, full bool) *ir.Collection {
	if full {
		return p.Tree()
	}
	return ir.FromProperties(
		ir.Property{Key: "packageid", Value: ir.FromUint64(uint64(p.PackageID))},
		ir.Property{Key: "billingtype", Value: ir.FromInt32(p.BillingType)},
		ir.Property{Key: "licensetype", Value: ir.FromInt32(p.LicenseType)},
		ir.Property{Key: "status", Value: ir.FromInt32(p.Status)},
		ir.Property{Key: "appids", Value: ir.FromCollection(idList(p.AppIDs))},
		ir.Property{Key: "depotids", Value: ir.FromCollection(idList(p.DepotIDs))},
	)
}

func idList(ids []uint32) *ir.Collection {
	vals := make([]*ir.Token, len(ids))
	for i, id := range ids {
		vals[i] = ir.FromUint64(uint64(id))
	}
	return ir.FromSlice(vals...)
}
