package main

import (
	"github.com/postmarkgo/postmark/pkg/postmark/api"
	"github.com/postmarkgo/postmark/pkg/postmark/api/bounces"
	"github.com/postmarkgo/postmark/pkg/postmark/api/servers"
	"github.com/postmarkgo/postmark/pkg/postmark/api/streams"
	"github.com/postmarkgo/postmark/pkg/postmark/api/templates"
	"github.com/spf13/cobra"
)

func newTemplateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage templates",
	}

	get := &cobra.Command{
		Use:   "get ID_OR_ALIAS",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &templates.GetTemplateRequest{Template: api.ParseRef(args[0])}
			_, err := call(cmd.Context(), opts, req.Execute)
			return err
		},
	}

	del := &cobra.Command{
		Use:   "delete ID_OR_ALIAS",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &templates.DeleteTemplateRequest{Template: api.ParseRef(args[0])}
			_, err := call(cmd.Context(), opts, req.Execute)
			return err
		},
	}

	list := &templates.ListTemplatesRequest{}
	var ttype string
	ls := &cobra.Command{
		Use:   "list",
		Short: "List the templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list.TemplateType = templates.TemplateType(ttype)
			_, err := call(cmd.Context(), opts, list.Execute)
			return err
		},
	}
	ls.Flags().Int64Var(&list.Count, "count", templates.DefaultListCount, "Number of templates to return")
	ls.Flags().Int64Var(&list.Offset, "offset", 0, "Number of templates to skip")
	ls.Flags().StringVar(&ttype, "type", "All", "Template type: All, Standard, or Layout")

	cmd.AddCommand(get, del, ls)
	return cmd
}

func newServerCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage servers (requires the account token)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get ID_OR_NAME",
		Short: "Show a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &servers.GetServerRequest{Server: api.ParseRef(args[0])}
			_, err := call(cmd.Context(), opts, req.Execute)
			return err
		},
	})
	return cmd
}

func newSuppressionsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppressions",
		Short: "Manage the suppression lists",
	}
	req := &streams.ListSuppressionsRequest{}
	list := &cobra.Command{
		Use:   "list STREAM",
		Short: "Dump the suppression list of a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Stream = args[0]
			_, err := call(cmd.Context(), opts, req.Execute)
			return err
		},
	}
	list.Flags().StringVar(&req.SuppressionReason, "reason", "", "Filter by reason (e.g., HardBounce)")
	list.Flags().StringVar(&req.EmailAddress, "email", "", "Filter by address")
	cmd.AddCommand(list)
	return cmd
}

func newDeliveryStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delivery-stats",
		Short: "Show the bounce counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := call(cmd.Context(), opts, (&bounces.DeliveryStatsRequest{}).Execute)
			return err
		},
	}
}
