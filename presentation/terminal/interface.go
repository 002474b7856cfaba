package terminal

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"web_task_agent/application/agent"
	"web_task_agent/application/router"
	"web_task_agent/config"
	"web_task_agent/domain/entities"
	"web_task_agent/infrastructure/browser"
)

type options struct {
	location    string
	datetime    string
	preferences string
	keepOpen    bool
	browserName string
	startURL    string
}

// NewRootCmd builds the CLI: a single-shot command that routes the task,
// drives the browser through the destination's search and prints the result
// fields.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "web-task-agent <task>",
		Short: "Routes a free-text task to a web destination and runs its search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("browser") {
				cfg.Browser.Channel = opts.browserName
			}
			return run(cmd.Context(), cfg, opts, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.location, "location", "", "location hint (city/area)")
	cmd.Flags().StringVar(&opts.datetime, "datetime", "", "date/time hint")
	cmd.Flags().StringVar(&opts.preferences, "preferences", "", "preference hint (e.g. a marketplace)")
	cmd.Flags().BoolVar(&opts.keepOpen, "keep-open", true, "keep the browser open until Enter is pressed")
	cmd.Flags().StringVar(&opts.browserName, "browser", "chromium", "browser to use: chromium (bundled), msedge, chrome, firefox, webkit")
	cmd.Flags().StringVar(&opts.startURL, "start-url", "", "start on this URL and bypass routing (e.g. http://localhost:3000)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, opts *options, task string) error {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	req := entities.TaskRequest{
		Task:        task,
		Location:    opts.location,
		DateTime:    opts.datetime,
		Preferences: opts.preferences,
	}

	reader := bufio.NewReader(os.Stdin)

	var routed entities.RoutedSite
	if opts.startURL != "" {
		routed = router.Local(req, opts.startURL)
	} else {
		// Pre-route to learn which hints the destination actually uses, ask
		// for the missing ones, then route again with the final request.
		pre := router.Route(req)
		if pre.Name == entities.DestMovies || pre.Name == entities.DestFood {
			req.Location = promptIfMissing(reader, req.Location, "Location (city/area): ")
		}
		if pre.Name == entities.DestMovies || pre.Name == entities.DestTravel {
			req.DateTime = promptIfMissing(reader, req.DateTime, "Date/Time (optional, press Enter to skip): ")
		}
		routed = router.Route(req)
	}

	ctrl, err := browser.NewController(cfg.Browser.Channel, cfg.Browser.Headless, cfg.Browser.SlowMo, logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	engine := agent.NewEngine(ctrl, logger, agent.Timeouts{
		Popup:       cfg.Timeouts.Popup,
		PopupSettle: cfg.Timeouts.PopupSettle,
		Search:      cfg.Timeouts.Search,
		Action:      cfg.Timeouts.Action,
		Results:     cfg.Timeouts.Results,
		Settle:      cfg.Timeouts.Settle,
		TypeDelay:   cfg.Timeouts.TypeDelay,
	})

	report := engine.Run(ctx, routed)

	if opts.keepOpen {
		fmt.Print("Results page reached. Press Enter to close the browser...")
		_, _ = reader.ReadString('\n')
	}

	fmt.Printf("SITE: %s\n", report.Routed.Name)
	fmt.Printf("SEARCH: %s\n", report.Routed.Query)
	fmt.Printf("TITLE: %s\n", report.FinalTitle)
	fmt.Printf("URL: %s\n", report.FinalURL)

	return nil
}

// promptIfMissing asks for a value only when the flag did not supply one. An
// empty answer leaves the field unset.
func promptIfMissing(reader *bufio.Reader, value, prompt string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return value
	}
	return strings.TrimSpace(line)
}
