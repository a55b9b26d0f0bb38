package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Insights InsightsCmd      `cmd:"" help:"Scan a dataset and report automated insights"`
	TTest    TTestCmd         `cmd:"" name:"ttest" help:"Run a t-test on one or two columns"`
	Correl   CorrelCmd        `cmd:"" name:"correlate" help:"Measure the association between two columns"`
	ChiSq    ChiSqCmd         `cmd:"" name:"chisq" help:"Chi-square goodness-of-fit test on a column of counts"`
	Regress  RegressCmd       `cmd:"" help:"Fit a linear model"`
	Trend    TrendCmd         `cmd:"" help:"Analyse trend, seasonality and anomalies in a column"`
	Describe DescribeCmd      `cmd:"" help:"Summarise a column"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("statkit"),
		kong.Description("Statistical analysis and automated insights for CSV datasets"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
