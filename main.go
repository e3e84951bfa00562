package main

import (
	"fmt"
	"os"

	"fjacquet/kfinance/cmd/add"
	"fjacquet/kfinance/cmd/categories"
	"fjacquet/kfinance/cmd/charts"
	"fjacquet/kfinance/cmd/dashboard"
	"fjacquet/kfinance/cmd/data"
	"fjacquet/kfinance/cmd/export"
	"fjacquet/kfinance/cmd/list"
	"fjacquet/kfinance/cmd/remove"
	"fjacquet/kfinance/cmd/root"
	"fjacquet/kfinance/cmd/user"
	"fjacquet/kfinance/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env first, silently, so LOG_LEVEL applies before anything logs
	config.LoadEnv()
	logrus.SetLevel(config.LevelFromEnv())

	root.Init()

	root.Cmd.AddCommand(user.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(charts.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(data.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
