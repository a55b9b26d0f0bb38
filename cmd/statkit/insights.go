package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/statkit/statkit/internal/analytics"
)

// InsightsCmd scans every column and column pair of the input for findings.
type InsightsCmd struct {
	commonFlags
	Robust bool `kong:"help='Apply multiple-comparison correction to pairwise p-values'"`
}

func (c *InsightsCmd) Run() error {
	logger := setupLogger(c.Debug)

	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	if c.Robust {
		robust := true
		if err := engine.UpdateConfig(analytics.ConfigUpdate{RobustMethods: &robust}); err != nil {
			return err
		}
	}

	series, err := c.loadSeries()
	if err != nil {
		return err
	}
	logger.Debug("loaded dataset", "columns", len(series))

	insights, err := engine.GenerateInsights(context.Background(), series)
	if err != nil {
		return err
	}

	return report(c.Output, insights, func() {
		if len(insights) == 0 {
			fmt.Println("No notable findings.")
			return
		}
		for i, ins := range insights {
			fmt.Printf("%d. [%s/%s] %s\n", i+1, ins.Type, ins.Significance, ins.Title)
			fmt.Printf("   %s (confidence %.0f%%)\n", ins.Description, ins.Confidence*100)
			for _, ev := range ins.Evidence {
				fmt.Printf("   - %s\n", ev)
			}
			if len(ins.Recommendations) > 0 {
				fmt.Printf("   => %s\n", strings.Join(ins.Recommendations, " "))
			}
		}
	})
}
