package main

import (
	"github.com/spf13/cobra"

	"parsifal/internal/inspect"
	"parsifal/internal/source"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		selector string
		asJSON   bool
		render   bool
		wait     string
	)
	cmd := &cobra.Command{
		Use:   "inspect <file|url|->",
		Short: "Resolve the values of the controls in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if selector == "" {
				selector = a.cfg.Selector
			}
			flags := a.capabilities(ctx)

			var doc *source.Document
			var err error
			if render {
				doc, err = a.chrome().Render(ctx, args[0], wait)
			} else {
				loader := source.NewLoader(a.logger, a.cfg.Timeout)
				loader.Stdin = cmd.InOrStdin()
				doc, err = loader.Load(ctx, args[0])
			}
			if err != nil {
				return a.fail(cmd, err)
			}

			rep, err := inspect.Run(doc, flags, selector, a.logger)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.logger.Info("inspected", "url", rep.URL, "controls", len(rep.Controls))
			if asJSON {
				return rep.WriteJSON(cmd.OutOrStdout())
			}
			return rep.WriteText(cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&selector, "selector", "s", "", "CSS selector for the controls to resolve")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	f.BoolVar(&render, "render", false, "load the page in headless Chrome and inspect the scripted DOM")
	f.StringVar(&wait, "wait", "", "with --render, wait until this selector is visible")
	return cmd
}
